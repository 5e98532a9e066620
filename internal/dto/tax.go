package dto

// VatRates - вложенные ставки в GET admin/tax/config
type VatRates struct {
	TvaIntegrale float64 `json:"tvaIntegrale"`
	TvaSurMarge  float64 `json:"tvaSurMarge"`
	ExonereDeTva float64 `json:"exonereDeTva"`
}

// TaxConfig - конфигурация в GET
type TaxConfig struct {
	VatRates           VatRates `json:"vatRates"`
	StandardMarginRate float64  `json:"standardMarginRate"`
}

// TaxConfigResponse - GET admin/tax/config
type TaxConfigResponse struct {
	Envelope
	Config TaxConfig `json:"config"`
}

// TaxRates - плоские ставки: тело PUT и конфиг в его ответе
type TaxRates struct {
	TvaIntegrale       float64 `json:"tvaIntegrale"`
	TvaSurMarge        float64 `json:"tvaSurMarge"`
	ExonereDeTva       float64 `json:"exonereDeTva"`
	StandardMarginRate float64 `json:"standardMarginRate"`
}

// TaxUpdateResponse - PUT admin/tax/config
type TaxUpdateResponse struct {
	Envelope
	Config TaxRates `json:"config"`
}
