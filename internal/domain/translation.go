package domain

// TranslationRequest is a single text to translate with terminology control
type TranslationRequest struct {
	Text   string `json:"text"`
	Source string `json:"src"`
	Target string `json:"dest"`
	Domain string `json:"domain,omitempty"`
}

// Scope returns the terminology scope of the request
func (r TranslationRequest) Scope() Scope {
	return NewScope(r.Domain, r.Target)
}

// TranslationResult is the outcome of one terminology-controlled translation
type TranslationResult struct {
	Original            string               `json:"original"`
	Preprocessed        string               `json:"preprocessed"`
	ExternalTranslation string               `json:"external_translation"`
	Text                string               `json:"text"`
	Source              string               `json:"src"`
	Target              string               `json:"dest"`
	Domain              string               `json:"domain,omitempty"`
	ReplacementsCount   int                  `json:"replacements_count"`
	ReplacedTerms       []string             `json:"replaced_terms"`
	Anomalies           []RestorationAnomaly `json:"anomalies,omitempty"`
}

// BatchItem is the outcome of one text inside a batch.
// Exactly one of Result and Err is set.
type BatchItem struct {
	Index  int
	Result *TranslationResult
	Err    error
}
