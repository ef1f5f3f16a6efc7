package diseasedb

// Info describes a single disease in the reference table.
type Info struct {
	Crop             string   `json:"crop"`
	Severity         string   `json:"severity"`
	ScientificName   string   `json:"scientific_name"`
	Description      string   `json:"description"`
	Symptoms         []string `json:"symptoms"`
	Treatment        []string `json:"treatment"`
	Prevention       []string `json:"prevention"`
	OrganicTreatment []string `json:"organic_treatment"`
	CostEstimate     string   `json:"cost_estimate"`
}

// Entry pairs a disease name with its record for listings and search results.
type Entry struct {
	Name string `json:"name"`
	Info
}

// table is the static reference data. It never mutates at runtime.
var table = map[string]Info{
	"Late Blight": {
		Crop:           "Tomato",
		Severity:       "Severe",
		ScientificName: "Phytophthora infestans",
		Description:    "A devastating fungal-like disease that causes dark, water-soaked spots on leaves and fruit. Can destroy entire crops within days in favorable conditions.",
		Symptoms: []string{
			"Dark brown to black spots on leaves",
			"White mold growth on leaf undersides",
			"Brown lesions on stems",
			"Greasy-looking spots on fruits",
		},
		Treatment: []string{
			"Remove and destroy all infected plant material immediately",
			"Apply copper-based fungicides every 7-10 days",
			"Apply chlorothalonil or mancozeb fungicides",
			"Improve air circulation by pruning",
			"Avoid overhead watering - water at soil level only",
		},
		Prevention: []string{
			"Plant resistant varieties (e.g., 'Mountain Magic', 'Defiant')",
			"Space plants 2-3 feet apart for air circulation",
			"Apply mulch to prevent soil splash",
			"Remove lower leaves touching the ground",
			"Monitor weather - disease spreads in cool, wet conditions",
		},
		OrganicTreatment: []string{
			"Copper sulfate spray",
			"Neem oil application",
			"Baking soda solution (1 tbsp per gallon water)",
			"Milk spray (1 part milk to 9 parts water)",
		},
		CostEstimate: "$20-50 for treatment per acre",
	},
	"Early Blight": {
		Crop:           "Tomato",
		Severity:       "Moderate",
		ScientificName: "Alternaria solani",
		Description:    "A common fungal disease causing dark spots with concentric rings (target-like pattern) on older leaves.",
		Symptoms: []string{
			"Brown spots with concentric rings on older leaves",
			"Yellow halo around spots",
			"Premature leaf drop",
			"Dark spots on stems and fruit",
		},
		Treatment: []string{
			"Remove affected lower leaves",
			"Apply fungicide containing chlorothalonil or copper",
			"Apply organic fungicides like Bacillus subtilis",
			"Mulch around plants to prevent soil splash",
			"Ensure proper spacing for air flow",
		},
		Prevention: []string{
			"Practice 3-4 year crop rotation",
			"Remove all plant debris at end of season",
			"Water in the morning at soil level",
			"Use drip irrigation instead of sprinklers",
			"Apply preventive fungicide sprays",
		},
		OrganicTreatment: []string{
			"Copper fungicide",
			"Compost tea spray",
			"Garlic spray solution",
			"Bordeaux mixture",
		},
		CostEstimate: "$15-30 for treatment per acre",
	},
	"Healthy Plant": {
		Crop:           "Multiple",
		Severity:       "None",
		ScientificName: "N/A",
		Description:    "Your plant appears healthy with no visible signs of disease! Keep up the good work.",
		Symptoms: []string{
			"Green, vibrant leaves",
			"No spots or discoloration",
			"Strong stem growth",
			"Normal leaf size and shape",
		},
		Treatment: []string{
			"Continue regular watering schedule",
			"Maintain fertilization routine",
			"Monitor plants regularly for any changes",
		},
		Prevention: []string{
			"Water consistently - 1-2 inches per week",
			"Fertilize every 2-3 weeks during growing season",
			"Inspect plants weekly for early disease detection",
			"Remove weeds that compete for nutrients",
			"Ensure good air circulation",
		},
		OrganicTreatment: []string{
			"Compost application for nutrients",
			"Mulching to retain moisture",
		},
		CostEstimate: "$0 - Just regular maintenance",
	},
	"Septoria Leaf Spot": {
		Crop:           "Tomato",
		Severity:       "Moderate",
		ScientificName: "Septoria lycopersici",
		Description:    "Fungal disease causing small circular spots with dark borders and gray centers on leaves.",
		Symptoms: []string{
			"Small circular spots (1/8 inch) on leaves",
			"Gray center with dark brown border",
			"Tiny black dots (fungal structures) in spot centers",
			"Yellowing and dropping of lower leaves",
		},
		Treatment: []string{
			"Remove infected leaves below the first fruit cluster",
			"Apply fungicide with chlorothalonil or copper",
			"Improve air circulation through pruning",
			"Avoid wetting foliage when watering",
		},
		Prevention: []string{
			"Mulch around plants heavily",
			"Remove all crop debris at season end",
			"Rotate crops - don't plant tomatoes in same spot for 3 years",
			"Use drip irrigation",
			"Space plants properly (18-24 inches)",
		},
		OrganicTreatment: []string{
			"Copper-based fungicides",
			"Sulfur sprays",
			"Baking soda mixture",
		},
		CostEstimate: "$20-40 for treatment per acre",
	},
	"Bacterial Spot": {
		Crop:           "Tomato/Pepper",
		Severity:       "Moderate to Severe",
		ScientificName: "Xanthomonas spp.",
		Description:    "Bacterial disease causing small, dark spots on leaves, stems, and fruit.",
		Symptoms: []string{
			"Small dark spots on leaves (greasy appearance)",
			"Yellow halo around spots",
			"Raised brown spots on fruit",
			"Leaf drop in severe cases",
		},
		Treatment: []string{
			"Apply copper-based bactericides",
			"Remove severely infected plants",
			"Avoid overhead watering",
			"Disinfect tools between plants",
			"Apply streptomycin (if available)",
		},
		Prevention: []string{
			"Use disease-free seeds and transplants",
			"Rotate crops for 2-3 years",
			"Avoid working with wet plants",
			"Space plants for air circulation",
			"Use resistant varieties when possible",
		},
		OrganicTreatment: []string{
			"Copper sulfate sprays",
			"Plant-based bactericides",
			"Remove and destroy infected tissue",
		},
		CostEstimate: "$25-45 for treatment per acre",
	},
	"Leaf Mold": {
		Crop:           "Tomato",
		Severity:       "Mild to Moderate",
		ScientificName: "Passalora fulva",
		Description:    "Fungal disease common in greenhouse tomatoes, causing yellow spots on upper leaf surfaces.",
		Symptoms: []string{
			"Pale green to yellow spots on upper leaf surface",
			"Olive-green to brown mold on lower leaf surface",
			"Curling and drying of leaves",
			"Rarely affects fruit directly",
		},
		Treatment: []string{
			"Improve ventilation in greenhouse",
			"Reduce humidity below 85%",
			"Apply fungicides containing chlorothalonil",
			"Remove infected leaves",
			"Increase spacing between plants",
		},
		Prevention: []string{
			"Maintain humidity below 85%",
			"Provide adequate ventilation",
			"Use resistant varieties",
			"Avoid overhead irrigation",
			"Space plants properly",
		},
		OrganicTreatment: []string{
			"Sulfur-based fungicides",
			"Improve air flow naturally",
			"Copper sprays",
		},
		CostEstimate: "$15-30 for treatment per greenhouse",
	},
	"Yellow Leaf Curl Virus": {
		Crop:           "Tomato",
		Severity:       "Severe",
		ScientificName: "Begomovirus",
		Description:    "Viral disease transmitted by whiteflies, causing severe yield loss.",
		Symptoms: []string{
			"Upward curling of leaf margins",
			"Yellowing of leaf edges",
			"Stunted plant growth",
			"Reduced fruit size and yield",
			"Flowers fall off",
		},
		Treatment: []string{
			"No cure - remove infected plants immediately",
			"Control whitefly populations with insecticides",
			"Use yellow sticky traps",
			"Apply neem oil to deter whiteflies",
			"Isolate affected area",
		},
		Prevention: []string{
			"Plant resistant varieties (e.g., 'Tyking', 'Shanty')",
			"Use reflective mulches to repel whiteflies",
			"Install fine mesh screens in greenhouses",
			"Control weeds that host whiteflies",
			"Start with certified disease-free plants",
		},
		OrganicTreatment: []string{
			"Neem oil for whitefly control",
			"Insecticidal soap",
			"Remove infected plants immediately",
		},
		CostEstimate: "$30-60 for prevention per acre",
	},
	"Target Spot": {
		Crop:           "Tomato",
		Severity:       "Moderate",
		ScientificName: "Corynespora cassiicola",
		Description:    "Fungal disease causing circular spots with concentric rings on leaves and fruit.",
		Symptoms: []string{
			"Brown spots with concentric rings",
			"Spots on leaves, stems, and fruit",
			"Premature leaf drop",
			"Reduced yield",
		},
		Treatment: []string{
			"Apply fungicides with azoxystrobin or chlorothalonil",
			"Remove infected plant parts",
			"Improve air circulation",
			"Reduce leaf wetness",
		},
		Prevention: []string{
			"Rotate crops every 3 years",
			"Use drip irrigation",
			"Mulch to prevent soil splash",
			"Space plants adequately",
			"Remove crop debris",
		},
		OrganicTreatment: []string{
			"Copper-based fungicides",
			"Sulfur sprays",
			"Compost tea applications",
		},
		CostEstimate: "$20-35 for treatment per acre",
	},
	"Mosaic Virus": {
		Crop:           "Tomato/Pepper",
		Severity:       "Severe",
		ScientificName: "Tobamovirus",
		Description:    "Viral disease causing mottled, discolored leaves and reduced yield.",
		Symptoms: []string{
			"Mottled light and dark green patterns on leaves",
			"Distorted, stunted growth",
			"Narrow, twisted leaves",
			"Reduced fruit production",
			"Fruit may show yellow blotches",
		},
		Treatment: []string{
			"No cure - remove and destroy infected plants",
			"Disinfect tools with 10% bleach solution",
			"Wash hands after handling infected plants",
			"Control aphids that spread the virus",
			"Destroy infected plants (don't compost)",
		},
		Prevention: []string{
			"Use certified disease-free seeds",
			"Plant resistant varieties",
			"Control aphid populations",
			"Avoid smoking near plants (tobacco carries virus)",
			"Wash hands before working with plants",
		},
		OrganicTreatment: []string{
			"Remove infected plants immediately",
			"Control aphids with neem oil",
			"Use insecticidal soap for aphids",
		},
		CostEstimate: "$0 for removal, $20-40 for prevention per acre",
	},
	"Powdery Mildew": {
		Crop:           "Multiple",
		Severity:       "Mild to Moderate",
		ScientificName: "Various species",
		Description:    "Fungal disease appearing as white powdery coating on leaves.",
		Symptoms: []string{
			"White powdery coating on leaves",
			"Leaves may yellow and drop",
			"Stunted growth",
			"Reduced yield",
		},
		Treatment: []string{
			"Apply sulfur or potassium bicarbonate sprays",
			"Remove heavily infected leaves",
			"Improve air circulation",
			"Apply fungicides if severe",
		},
		Prevention: []string{
			"Ensure good air circulation",
			"Avoid overhead watering",
			"Plant in full sun",
			"Use resistant varieties",
			"Apply preventive sulfur sprays",
		},
		OrganicTreatment: []string{
			"Milk spray (1:9 milk to water ratio)",
			"Baking soda solution",
			"Neem oil",
			"Sulfur fungicides",
		},
		CostEstimate: "$10-25 for treatment per acre",
	},
}
