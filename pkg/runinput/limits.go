package runinput

// Provider identifies a supported vector database.
type Provider string

const (
	ProviderPinecone Provider = "pinecone"
	ProviderQdrant   Provider = "qdrant"
)

// Providers lists supported providers in display order.
var Providers = []Provider{ProviderPinecone, ProviderQdrant}

// Distance metrics accepted for Qdrant collections.
const (
	DistanceCosine = "Cosine"
	DistanceDot    = "Dot"
	DistanceEuclid = "Euclid"
)

// DistanceMetrics lists accepted metrics in display order.
var DistanceMetrics = []string{DistanceCosine, DistanceDot, DistanceEuclid}

// Limits bounds what a single run may request.
type Limits struct {
	MaxVectors       int
	MaxBatchSize     map[Provider]int
	DefaultBatchSize int
	DefaultIDField   string
}

// DefaultLimits returns the production limits.
func DefaultLimits() Limits {
	return Limits{
		MaxVectors: 50_000,
		MaxBatchSize: map[Provider]int{
			ProviderPinecone: 1000,
			ProviderQdrant:   500,
		},
		DefaultBatchSize: 100,
		DefaultIDField:   "chunk_id",
	}
}

func (l Limits) maxBatch(p Provider) int {
	if n, ok := l.MaxBatchSize[p]; ok && n > 0 {
		return n
	}
	return DefaultLimits().MaxBatchSize[p]
}
