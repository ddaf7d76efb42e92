package domain

// Status is the severity vocabulary attached to every measured value
type Status string

const (
	StatusOK       Status = "ok"
	StatusRisk     Status = "risk"
	StatusCritical Status = "critical"

	// StatusUnknown is never sent by the model; it is what out-of-vocabulary
	// values collapse to for display.
	StatusUnknown Status = "unknown"
)

// Known reports whether s is one of ok, risk or critical
func (s Status) Known() bool {
	switch s {
	case StatusOK, StatusRisk, StatusCritical:
		return true
	}
	return false
}

// Normalize returns s when it is in the vocabulary and StatusUnknown otherwise
func (s Status) Normalize() Status {
	if s.Known() {
		return s
	}
	return StatusUnknown
}

// MeasuredValue is a single nutrient or score reading
type MeasuredValue struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	Status Status  `json:"status"`
}

// NutritionRecord is the document the model is asked to return for one image
type NutritionRecord struct {
	FoodItems           []FoodItem `json:"fooditems" validate:"required,dive"`
	GeneralHealthTips   []string   `json:"generalhealthtips" validate:"required"`
	DietaryRestrictions []string   `json:"dietaryrestrictions" validate:"required"`
}

// FoodItem describes one distinct food detected in the image
type FoodItem struct {
	Name                   string                 `json:"name" validate:"required"`
	PortionSize            string                 `json:"portionsize"`
	Calories               float64                `json:"calories"`
	Macros                 Macros                 `json:"macros"`
	VitaminsAndMinerals    VitaminsAndMinerals    `json:"vitaminsandminerals"`
	GlycemicIndex          MeasuredValue          `json:"glycemicindex"`
	HealthBenefits         []string               `json:"healthbenefits"`
	PossibleAllergies      []string               `json:"possibleallergies"`
	CookingMethods         []string               `json:"cookingmethods"`
	RecommendedDailyIntake RecommendedDailyIntake `json:"recommendeddailyintake"`
	Bioavailability        MeasuredValue          `json:"bioavailability"`
	Antioxidants           MeasuredValue          `json:"antioxidants"`
	DigestibilityScore     MeasuredValue          `json:"digestibilityscore"`
	HydrationEffect        MeasuredValue          `json:"hydrationeffect"`
	StorageInstructions    string                 `json:"storageinstructions"`
	CulturalSignificance   string                 `json:"culturalsignificance"`
	CommonDishes           []string               `json:"commondishes"`
	Origin                 string                 `json:"origin"`
	ShelfLife              string                 `json:"shelflife"`
	FoodCategory           string                 `json:"foodcategory"`
	AlternativeNames       []string               `json:"alternativenames"`
	PreservationMethods    []string               `json:"preservationmethods"`
	FermentationPotential  MeasuredValue          `json:"fermentationpotential"`
	FoodPairings           []string               `json:"foodpairings"`
	CulinaryUses           []string               `json:"culinaryuses"`
	Texture                string                 `json:"texture"`
	Aroma                  string                 `json:"aroma"`
	Recipes                []Recipe               `json:"recipes"`
	CookingTime            CookingTime            `json:"cookingtime"`
	AllergenWarnings       []string               `json:"allergenwarnings"`
	FoodGroup              string                 `json:"foodgroup"`
	MealType               []string               `json:"mealtype"`
	ServingTemperature     []string               `json:"servingtemperature"`
	SeasonalAvailability   []string               `json:"seasonalavailability"`
	SustainabilityScore    MeasuredValue          `json:"sustainabilityscore"`
	CarbonFootprint        MeasuredValue          `json:"carbonfootprint"`
	ProcessingLevel        string                 `json:"processinglevel"`
	RecommendedCombos      []string               `json:"recommendedcombos"`
}

// Macros holds the macronutrient readings, all in grams
type Macros struct {
	Protein       MeasuredValue `json:"protein"`
	Carbohydrates MeasuredValue `json:"carbohydrates"`
	Fat           MeasuredValue `json:"fat"`
	Fiber         MeasuredValue `json:"fiber"`
	Sugar         MeasuredValue `json:"sugar"`
}

// VitaminsAndMinerals holds the nine micronutrients the prompt asks for
type VitaminsAndMinerals struct {
	Iron       MeasuredValue `json:"iron"`
	Magnesium  MeasuredValue `json:"magnesium"`
	Phosphorus MeasuredValue `json:"phosphorus"`
	Potassium  MeasuredValue `json:"potassium"`
	Folate     MeasuredValue `json:"folate"`
	Calcium    MeasuredValue `json:"calcium"`
	Sodium     MeasuredValue `json:"sodium"`
	VitaminE   MeasuredValue `json:"vitamin_e"`
	VitaminK   MeasuredValue `json:"vitamin_k"`
}

// RecommendedDailyIntake is the suggested serving and how often to eat it
type RecommendedDailyIntake struct {
	ServingSize string `json:"servingsize"`
	Frequency   string `json:"frequency"`
}

// CookingTime splits preparation and cooking durations
type CookingTime struct {
	PrepTime string `json:"preptime"`
	CookTime string `json:"cooktime"`
}

// Recipe is a suggested dish using the detected food
type Recipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	CookingTime string   `json:"cookingtime"`
	Servings    float64  `json:"servings"`
	Difficulty  string   `json:"difficulty"`
}

// NormalizeStatuses rewrites every out-of-vocabulary status to StatusUnknown
func (r *NutritionRecord) NormalizeStatuses() {
	for i := range r.FoodItems {
		for _, mv := range r.FoodItems[i].measuredValues() {
			mv.Status = mv.Status.Normalize()
		}
	}
}

// measuredValues lists pointers to every measured attribute of the item
func (f *FoodItem) measuredValues() []*MeasuredValue {
	return []*MeasuredValue{
		&f.Macros.Protein,
		&f.Macros.Carbohydrates,
		&f.Macros.Fat,
		&f.Macros.Fiber,
		&f.Macros.Sugar,
		&f.VitaminsAndMinerals.Iron,
		&f.VitaminsAndMinerals.Magnesium,
		&f.VitaminsAndMinerals.Phosphorus,
		&f.VitaminsAndMinerals.Potassium,
		&f.VitaminsAndMinerals.Folate,
		&f.VitaminsAndMinerals.Calcium,
		&f.VitaminsAndMinerals.Sodium,
		&f.VitaminsAndMinerals.VitaminE,
		&f.VitaminsAndMinerals.VitaminK,
		&f.GlycemicIndex,
		&f.Bioavailability,
		&f.Antioxidants,
		&f.DigestibilityScore,
		&f.HydrationEffect,
		&f.FermentationPotential,
		&f.SustainabilityScore,
		&f.CarbonFootprint,
	}
}
