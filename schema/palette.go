package schema

// Palette is the ordered list of colors assigned by rank.
// Rank i gets Palette[i % len(Palette)].
var Palette = []string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#86bcb6",
}

// OtherColor is the fixed, neutral color of the synthetic "Other" group.
const OtherColor = "#bab0ac"

// ColorForRank returns the palette color for a zero-based rank.
func ColorForRank(rank int) string {
	return Palette[rank%len(Palette)]
}
