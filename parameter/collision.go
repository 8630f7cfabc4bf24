package parameter

// Default collision layers, bit index per name
var DefaultLayers = map[string]int{
	"neutral":     0,
	"tiles_green": 1,
	"tiles_blue":  2,
	"tiles_pink":  3,
	"tiles_red":   4,
	"grab_green":  5,
	"grab_blue":   6,
	"grab_pink":   7,
	"grab_red":    8,
	"pickup":      9,
}

// DefaultGroundMasks lists the layers each colour stands on
var DefaultGroundMasks = map[string][]string{
	"green": {"neutral", "tiles_green"},
	"blue":  {"neutral", "tiles_blue"},
	"pink":  {"neutral", "tiles_pink"},
	"red":   {"neutral", "tiles_red"},
}

// DefaultGrabbableMasks lists the layers each colour can grab
var DefaultGrabbableMasks = map[string][]string{
	"green": {"grab_green"},
	"blue":  {"grab_blue"},
	"pink":  {"grab_pink"},
	"red":   {"grab_red"},
}

// ColorNames orders the player colours, index is the colour value
var ColorNames = [4]string{"green", "blue", "pink", "red"}

// SpawnColor is the colour assigned at spawn
const SpawnColor = "green"

// PickupTagPrefix marks colour pickup colliders, suffix is the colour name
const PickupTagPrefix = "pickup_"
