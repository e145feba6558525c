package whisper

// Model tiers supported by the transcriber, ordered from fastest to most
// accurate.
const (
	ModelTiny   = "tiny"
	ModelBase   = "base"
	ModelSmall  = "small"
	ModelMedium = "medium"
	ModelLarge  = "large"
)

// DefaultModel is the tier used when none is configured.
const DefaultModel = ModelBase

var modelTiers = []string{ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge}

// Models returns the supported model tiers in order.
func Models() []string {
	tiers := make([]string, len(modelTiers))
	copy(tiers, modelTiers)
	return tiers
}

// ValidModel reports whether name is a supported model tier.
func ValidModel(name string) bool {
	for _, tier := range modelTiers {
		if name == tier {
			return true
		}
	}
	return false
}
