package model

// Filer identifies one watched institutional filer.
type Filer struct {
	Name string `yaml:"name"`
	CIK  string `yaml:"cik"`
}
