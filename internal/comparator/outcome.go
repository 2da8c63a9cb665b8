package comparator

// DiffOutcome is the result of comparing one baseline/new image pair
type DiffOutcome struct {
	// TestedImage is the shared file name of the compared pair
	TestedImage  string
	BaselinePath string
	NewPath      string
	// DiffImagePath points at the composed three-panel artifact for a
	// failed comparison and is empty when the images are identical.
	DiffImagePath string
	Width         int
	Height        int
	ImagesAreSame bool
	DiffCount     int
	// DiffPercentage is 100 * DiffCount / (Width * Height)
	DiffPercentage float64
}

// computeDiffPercentage derives the differing-pixel share of the image area
func computeDiffPercentage(diffCount, width, height int) float64 {
	area := width * height
	if area == 0 {
		return 0
	}
	return 100 * float64(diffCount) / float64(area)
}

// BatchOutcome aggregates a whole comparison run.
// Passed and Failed together cover every compared pair exactly once; every
// Failed entry carries a diff artifact path, no Passed entry does.
type BatchOutcome struct {
	Passed   []DiffOutcome
	Failed   []DiffOutcome
	Missing  []string
	Outdated []string
}
