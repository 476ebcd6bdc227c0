package analyzer

import (
	"bytes"
	"context"
	"hash/fnv"
	"image"
	"log/slog"

	// Registered so image.Decode can read the accepted upload formats.
	_ "image/jpeg"
	_ "image/png"

	"github.com/stylehive/outfit-planner/internal/domain/closet"
)

// Heuristic derives styling metadata without any external AI service. Body
// analysis returns a fixed profile; garment analysis samples the image for a
// dominant color and seeds the remaining attributes from a content hash, so
// identical uploads always analyze identically.
type Heuristic struct {
	logger *slog.Logger
}

// NewHeuristic constructs the analyzer.
func NewHeuristic(logger *slog.Logger) *Heuristic {
	return &Heuristic{logger: logger.With("component", "analyzer.heuristic")}
}

// AnalyzeBody classifies a profile photo.
func (a *Heuristic) AnalyzeBody(_ context.Context, _ closet.Upload) (closet.BodyAnalysis, error) {
	return closet.BodyAnalysis{
		BodyType: "athletic",
		StyleSuggestions: closet.StyleSuggestions{
			RecommendedFits:  []string{"fitted", "tailored", "relaxed"},
			FlatteringStyles: []string{"casual", "smart-casual", "athleisure"},
			Tips: []string{
				"Emphasize your shoulders with structured pieces",
				"Try fitted tops with relaxed bottoms",
				"Athleisure wear will look great on you",
			},
		},
	}, nil
}

// AnalyzeGarment derives color, style, season and tags from a clothing photo.
// Category is left empty so the caller's submitted category stands.
func (a *Heuristic) AnalyzeGarment(_ context.Context, img closet.Upload) (closet.GarmentAnalysis, error) {
	seed := contentSeed(img.Content)
	analysis := closet.GarmentAnalysis{
		Color:  dominantColor(img.Content),
		Style:  pick(styles, seed),
		Season: pick(seasons, seed>>8),
		Tags:   pickTags(seed),
	}
	if analysis.Color == "" {
		a.logger.Debug("garment image not decodable, skipping color", "filename", img.Filename)
	}
	return analysis, nil
}

var _ closet.Analyzer = (*Heuristic)(nil)

var (
	styles  = []string{"casual", "classic", "sporty", "formal", "bohemian"}
	seasons = []string{closet.SeasonAll, closet.SeasonSpring, closet.SeasonSummer, closet.SeasonFall, closet.SeasonWinter}
	tags    = []string{"cotton", "comfortable", "versatile", "classic", "lightweight", "statement", "everyday", "layerable"}
)

func contentSeed(data []byte) uint64 {
	hash := fnv.New64a()
	_, _ = hash.Write(data)
	return hash.Sum64()
}

func pick(options []string, seed uint64) string {
	return options[seed%uint64(len(options))]
}

func pickTags(seed uint64) []string {
	out := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		seed = seed*1099511628211 + 1469598103934665603
		tag := tags[seed%uint64(len(tags))]
		if !contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// dominantColor averages a sparse pixel sample and names the nearest palette
// entry. Undecodable formats (e.g. WEBP) yield an empty color.
func dominantColor(data []byte) string {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return ""
	}

	stepX := max(1, bounds.Dx()/16)
	stepY := max(1, bounds.Dy()/16)
	var sumR, sumG, sumB, count uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
			count++
		}
	}
	if count == 0 {
		return ""
	}
	return nearestColor(uint8(sumR/count), uint8(sumG/count), uint8(sumB/count))
}

type paletteEntry struct {
	name    string
	r, g, b uint8
}

var palette = []paletteEntry{
	{"black", 20, 20, 20},
	{"white", 240, 240, 240},
	{"gray", 128, 128, 128},
	{"red", 200, 40, 40},
	{"orange", 230, 140, 40},
	{"yellow", 230, 210, 60},
	{"green", 50, 150, 60},
	{"blue", 50, 90, 200},
	{"navy", 25, 35, 95},
	{"purple", 130, 60, 180},
	{"pink", 235, 130, 180},
	{"brown", 120, 80, 50},
}

func nearestColor(r, g, b uint8) string {
	best := palette[0]
	bestDist := int64(1) << 62
	for _, entry := range palette {
		dr := int64(r) - int64(entry.r)
		dg := int64(g) - int64(entry.g)
		db := int64(b) - int64(entry.b)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = entry
		}
	}
	return best.name
}
