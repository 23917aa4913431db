package seedmodels

// SeedProfession defines a profession entry in the JSON seed file.
type SeedProfession struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	MLClassCode string `json:"ml_class_code"`
}

// SeedCatalog is the root of the JSON seed file.
type SeedCatalog struct {
	Professions []SeedProfession `json:"professions"`
}
