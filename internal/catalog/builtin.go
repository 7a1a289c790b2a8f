package catalog

import (
	"github.com/bodul/xwlevels/internal/grid"
	"github.com/bodul/xwlevels/internal/layout"
)

// clues builds a clue list from alternating text/answer pairs.
func clues(pairs ...string) []Clue {
	out := make([]Clue, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Clue{Number: len(out) + 1, Text: pairs[i], Answer: pairs[i+1]})
	}
	return out
}

// Default returns the built-in level set.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic("catalog: invalid built-in levels: " + err.Error())
	}
	return c
}

// ManualLayouts returns the hand-authored layouts, keyed by level id.
func ManualLayouts() map[int]layout.Manual {
	return map[int]layout.Manual{
		1: {Size: 7, Slots: []layout.Slot{
			{Number: 1, Orientation: grid.Down, Row: 0, Col: 4},
			{Number: 2, Orientation: grid.Down, Row: 1, Col: 3},
			{Number: 3, Orientation: grid.Across, Row: 2, Col: 2},
			{Number: 4, Orientation: grid.Across, Row: 3, Col: 0},
		}},
		2: {Size: 7, Slots: []layout.Slot{
			{Number: 1, Orientation: grid.Down, Row: 1, Col: 3},
			{Number: 2, Orientation: grid.Across, Row: 2, Col: 1},
			{Number: 3, Orientation: grid.Down, Row: 0, Col: 5},
		}},
	}
}

var builtin = []Level{
	{ID: 1, Title: "Fruits", Clues: clues(
		"Small green or purple fruits growing in a bunch", "GRAPE",
		"A yellow sour fruit", "LEMON",
		"A green part of a plant", "LEAF",
		"A purple fruit with a stone inside", "PLUM",
	)},
	{ID: 2, Title: "Energy & Light", Clues: clues(
		"A small flash of energy", "SPARK",
		"A moving line of energy or motion", "WAPER",
		"The center or heart of something", "CORE",
	)},
	{ID: 3, Title: "Calm & Feelings", Clues: clues(
		"A state of being relaxed and calm", "PEACE",
		"To stop and relax", "REST",
		"Gentle to touch or feel", "SOFT",
		"The absence of noise", "QUIET",
	)},
	{ID: 4, Title: "Growth & Care", Clues: clues(
		"A flower opening or growing", "BLOOM",
		"The part of a plant under the ground", "ROOT",
		"To become bigger over time", "GROW",
	)},
	{ID: 5, Title: "Spike World", Clues: clues(
		"The name of your energy friend", "SPIKE",
		"Something that makes darkness brighter", "LIGHT",
		"Power that makes things move or shine", "ENERGY",
	)},
	{ID: 6, Title: "Daily Calm", Clues: clues(
		"To slowly take air in and out", "BREATHE",
		"The start of the day", "MORNING",
		"A state of harmony and stability", "BALANCE",
		"Not moving, calm", "STILL",
	)},
	{ID: 7, Title: "Nature Touch", Clues: clues(
		"A small flowing stream", "RIVER",
		"Soft light from the sky", "GLOW",
		"Moving air", "WIND",
	)},
	{ID: 8, Title: "Inner State", Clues: clues(
		"Being aware of the present", "FOCUS",
		"To let go of stress", "RELAX",
		"A feeling of safety", "SAFE",
	)},
	{ID: 9, Title: "Plant Life", Clues: clues(
		"A tall plant with a hard trunk", "TREE",
		"A thin green part of a plant", "STEM",
		"A seed growing into a plant", "SPROUT",
	)},
	{ID: 10, Title: "Light Shapes", Clues: clues(
		"A round shape", "CIRCLE",
		"A straight line", "LINE",
		"A soft edge", "CURVE",
	)},
	{ID: 11, Title: "Soft Actions", Clues: clues(
		"To move slowly", "DRIFT",
		"To touch lightly", "BRUSH",
		"To hold gently", "CRADLE",
	)},
	{ID: 12, Title: "Quiet Moments", Clues: clues(
		"The time before sleep", "NIGHT",
		"The moment after rest", "WAKE",
		"A short stop", "PAUSE",
	)},
	{ID: 13, Title: "Warm Feelings", Clues: clues(
		"A kind emotion", "CARE",
		"A gentle smile", "SMILE",
		"Feeling close to someone", "BOND",
	)},
	{ID: 14, Title: "Day Light", Clues: clues(
		"Light in the early day", "DAWN",
		"Soft light at sunset", "DUSK",
		"Heat from the sun", "WARMTH",
	)},
	{ID: 15, Title: "Simple Joy", Clues: clues(
		"A pleasant feeling", "JOY",
		"Something fun to do", "PLAY",
		"A happy surprise", "DELIGHT",
	)},
	{ID: 16, Title: "Flow", Clues: clues(
		"To move smoothly", "FLOW",
		"A steady rhythm", "PACE",
		"Even and stable", "STEADY",
	)},
	{ID: 17, Title: "Earth", Clues: clues(
		"Dry soil", "SAND",
		"Small stones", "PEBBLE",
		"Solid ground", "EARTH",
	)},
	{ID: 18, Title: "Support", Clues: clues(
		"To help gently", "AID",
		"To protect", "GUARD",
		"To support growth", "NURTURE",
	)},
	{ID: 19, Title: "Calm Space", Clues: clues(
		"A safe place", "SHELTER",
		"A quiet area", "ZONE",
		"A small room", "ROOM",
	)},
	{ID: 20, Title: "Motion", Clues: clues(
		"Soft movement", "SWAY",
		"Slow rotation", "TURN",
		"Gentle rise", "LIFT",
	)},
	{ID: 21, Title: "Inner Strength", Clues: clues(
		"Calm power", "STRENGTH",
		"Steady confidence", "FAITH",
		"Inner light", "SPIRIT",
	)},
	{ID: 22, Title: "Nature Sounds", Clues: clues(
		"Water falling", "DROP",
		"Leaves moving softly", "RUSTLE",
		"A soft constant sound", "HUM",
	)},
	{ID: 23, Title: "Daily Care", Clues: clues(
		"Food for growth", "NOURISH",
		"Time to rest", "SLEEP",
		"Care for yourself", "SELF",
	)},
	{ID: 24, Title: "Sky & Air", Clues: clues(
		"Moving air", "BREEZE",
		"Soft cloud close to ground", "MIST",
		"Open sky color", "BLUE",
	)},
	{ID: 25, Title: "Small Things", Clues: clues(
		"Tiny light point", "DOT",
		"Small amount", "BIT",
		"Light contact", "TOUCH",
	)},
	{ID: 26, Title: "Stability", Clues: clues(
		"Strong base", "BASE",
		"Even state", "LEVEL",
		"Balanced form", "ALIGN",
	)},
	{ID: 27, Title: "Ease", Clues: clues(
		"To reduce tension", "EASE",
		"Quiet mind", "CALM",
		"Soft thought", "IDEA",
	)},
	{ID: 28, Title: "New Start", Clues: clues(
		"Early stage of a plant", "SEED",
		"Fresh start", "BEGIN",
		"To slowly develop", "EVOLVE",
	)},
	{ID: 29, Title: "Gentle Power", Clues: clues(
		"Soft strength and elegance", "GRACE",
		"Light energy around", "AURA",
		"Inner warmth", "HEAT",
	)},
	{ID: 30, Title: "Connection", Clues: clues(
		"To link things", "CONNECT",
		"Shared moment", "TOGETHER",
		"Single unity", "ONE",
	)},
	{ID: 31, Title: "Recovery", Clues: clues(
		"To get better again", "HEAL",
		"Quiet pause", "BREAK",
		"Slow breath in", "INHALE",
	)},
	{ID: 32, Title: "Bright", Clues: clues(
		"Light reflection", "SHINE",
		"Soft brightness", "GLOW",
		"A clear ray of light", "BEAM",
	)},
	{ID: 33, Title: "Steps", Clues: clues(
		"To go forward", "MOVE",
		"One walking motion", "STEP",
		"A gentle path", "WAY",
	)},
	{ID: 34, Title: "Feelings", Clues: clues(
		"Deep calm", "SERENE",
		"Safe warm feeling", "COMFORT",
		"Quiet happiness", "CONTENT",
	)},
	{ID: 35, Title: "Care Actions", Clues: clues(
		"To look after plants", "TEND",
		"To support", "HOLD",
		"To keep safe", "PROTECT",
	)},
	{ID: 36, Title: "Life Flow", Clues: clues(
		"A repeating order", "CYCLE",
		"Smooth change", "SHIFT",
		"Time passing", "TIME",
	)},
	{ID: 37, Title: "Places", Clues: clues(
		"Open area", "FIELD",
		"Personal zone", "SPACE",
		"Quiet corner", "NOOK",
	)},
	{ID: 38, Title: "Harmony", Clues: clues(
		"Even energy", "HARMONY",
		"Stable center", "CENTER",
		"Smooth motion", "FLOW",
	)},
	{ID: 39, Title: "Mindful", Clues: clues(
		"Present moment", "NOW",
		"Clear awareness", "AWARE",
		"Gentle focus", "ATTEND",
	)},
	{ID: 40, Title: "Light Care", Clues: clues(
		"To brighten", "ILLUME",
		"Warm light source", "LAMP",
		"Soft shine", "GLOW",
	)},
	{ID: 41, Title: "Inner World", Clues: clues(
		"Inside of you", "INNER",
		"Quiet thought", "THINK",
		"Deep feeling", "SENSE",
	)},
	{ID: 42, Title: "Nature Calm", Clues: clues(
		"Still water", "LAKE",
		"Quiet forest area", "WOODS",
		"Soft green ground", "MOSS",
	)},
	{ID: 43, Title: "Support", Clues: clues(
		"Strong help", "BACKING",
		"Steady hold", "ANCHOR",
		"To hold up", "LIFT",
	)},
	{ID: 44, Title: "Balance", Clues: clues(
		"Even sides", "EQUAL",
		"Smooth state", "STABLE",
		"To keep steady", "BALANCE",
	)},
	{ID: 45, Title: "Gentle Days", Clues: clues(
		"Early morning light", "DAWN",
		"Midday time", "NOON",
		"Late quiet time", "NIGHT",
	)},
	{ID: 46, Title: "Will", Clues: clues(
		"Power to act", "WILL",
		"A reason to do something", "MOTIVE",
		"Quiet strength", "GRIT",
	)},
	{ID: 47, Title: "Stages", Clues: clues(
		"Next stage", "PHASE",
		"Final form", "FORM",
		"Small progress", "STEP",
	)},
	{ID: 48, Title: "Peaceful World", Clues: clues(
		"No conflict", "PEACE",
		"Soft life", "EASE",
		"Stable arrangement", "ORDER",
	)},
	{ID: 49, Title: "Spike Care", Clues: clues(
		"Food for Spike", "FRUIT",
		"Growth moment", "FEED",
		"Energy gain", "POWER",
	)},
	{ID: 50, Title: "Complete Journey", Clues: clues(
		"Finished stage", "COMPLETE",
		"Growth achieved", "RISE",
		"Balanced ending", "HARMONY",
	)},
}
