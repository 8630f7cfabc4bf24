package main

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/collision"
	"github.com/lixenwraith/slime-launch/config"
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
	"github.com/lixenwraith/slime-launch/vmath"
)

// platform is one box of the sandbox level, layer is a layer name from config
type platform struct {
	min, max vmath.Vec2
	layer    string
	tag      string
}

var sandboxLevel = []platform{
	{vmath.V2(-30, -3), vmath.V2(30, -2), "neutral", "floor"},
	{vmath.V2(-31, -3), vmath.V2(-30, 12), "neutral", "wall_left"},
	{vmath.V2(30, -3), vmath.V2(31, 12), "neutral", "wall_right"},

	{vmath.V2(-22, 1), vmath.V2(-15, 1.5), "tiles_blue", "platform_blue"},
	{vmath.V2(-8, 3), vmath.V2(-2, 3.5), "tiles_pink", "platform_pink"},
	{vmath.V2(6, 2), vmath.V2(12, 2.5), "tiles_red", "platform_red"},
	{vmath.V2(-4, 7), vmath.V2(4, 7.5), "tiles_green", "platform_green"},

	{vmath.V2(18, -2), vmath.V2(19, 8), "grab_green", physics.TagGrabbable},
	{vmath.V2(-27, 2), vmath.V2(-26, 9), "grab_blue", physics.TagGrabbable},
}

var sandboxPickups = []struct {
	at    vmath.Vec2
	color string
}{
	{vmath.V2(-12, -1.5), "blue"},
	{vmath.V2(-18, 2.2), "pink"},
	{vmath.V2(-5, 4.2), "red"},
	{vmath.V2(9, 3.2), "green"},
	{vmath.V2(0, 8.2), "blue"},
}

// spawnPoint rests the body on the floor
var spawnPoint = vmath.V2(0, -2+parameter.BodyHalfHeight+parameter.BodySkin)

// buildLevel populates a collision world from the layout, unknown layer names fall back to neutral
func buildLevel(cfg *config.Config, log zerolog.Logger) *collision.World {
	w := collision.NewWorld(log)

	layer := func(name string) physics.Mask {
		if m := cfg.Layer(name); m != physics.MaskNone {
			return m
		}
		return cfg.Layer("neutral")
	}

	for _, p := range sandboxLevel {
		w.AddBox(p.min, p.max, layer(p.layer), p.tag)
	}

	half := vmath.V2(0.25, 0.25)
	for _, p := range sandboxPickups {
		w.AddBox(p.at.Sub(half), p.at.Add(half), layer("pickup"), parameter.PickupTagPrefix+p.color)
	}

	log.Info().Int("colliders", w.Len()).Msg("level built")
	return w
}
