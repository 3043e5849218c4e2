package domain

const ManifestVersion = "1.0"

type Manifest struct {
	Version         string              `json:"version"`
	GeneratedAt     string              `json:"generated_at"`
	OptimizedImages map[string][]string `json:"optimized_images"`
}

// NewManifest maps every result's source to its outputs. Failed sources are
// kept with an empty list.
func NewManifest(generatedAt string, results []OptimizationResult) *Manifest {
	images := make(map[string][]string, len(results))
	for _, r := range results {
		paths := r.Paths
		if paths == nil {
			paths = []string{}
		}
		images[r.Source] = paths
	}

	return &Manifest{
		Version:         ManifestVersion,
		GeneratedAt:     generatedAt,
		OptimizedImages: images,
	}
}

func (m *Manifest) TotalOutputs() int {
	total := 0
	for _, paths := range m.OptimizedImages {
		total += len(paths)
	}
	return total
}

// CountOutputs sums the produced paths across results.
func CountOutputs(results []OptimizationResult) int {
	total := 0
	for _, r := range results {
		total += len(r.Paths)
	}
	return total
}
