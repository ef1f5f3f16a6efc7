package detection

import (
	"fmt"
	"strings"
)

// BuildPrompt produces the pathologist instruction for a crop type. It is a
// pure function of its input so replies can be reproduced in tests.
func BuildPrompt(cropType string) string {
	display := "plant"
	trimmed := strings.TrimSpace(cropType)
	if trimmed != "" && !strings.EqualFold(trimmed, "unknown") {
		display = TitleCase(trimmed)
	}

	return fmt.Sprintf(`You are an expert plant pathologist. Analyze this %[1]s image and identify any diseases.

Provide your analysis in the following JSON format:
{
    "disease_detected": "name of disease or 'Healthy Plant'",
    "confidence": confidence score between 0 and 1,
    "severity": "None/Mild/Moderate/Severe",
    "symptoms_observed": ["list", "of", "symptoms"],
    "recommendation": "brief treatment recommendation"
}

For %[1]s, look for common diseases including:
- Fungal diseases (spots, blights, molds, rusts)
- Bacterial diseases (lesions, wilts, spots)
- Viral diseases (mosaic patterns, yellowing, deformities)
- Nutrient deficiencies (chlorosis, necrosis)
- Pest damage (holes, discoloration)
- Environmental stress (burning, wilting)

Focus on visible symptoms like:
- Leaf discoloration, spots, or patterns
- Leaf curling, wilting, or deformity
- Mold, fungal growth, or unusual textures
- Stem or branch lesions
- Overall plant health and vigor
- Any unusual growths or discolorations

Be specific about the disease name and provide practical treatment recommendations.
If the plant looks healthy, respond with "Healthy Plant".
If you cannot identify a specific disease, describe the symptoms and suggest "Unknown Disease - Consult Expert".`, display)
}

// TitleCase capitalizes the first letter of each space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
