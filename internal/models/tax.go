package models

// Ключи налоговых ставок в API
const (
	TaxKeyTvaIntegrale       = "tvaIntegrale"
	TaxKeyTvaSurMarge        = "tvaSurMarge"
	TaxKeyExonereDeTva       = "exonereDeTva"
	TaxKeyStandardMarginRate = "standardMarginRate"
)

// TaxRateSet - четыре ставки в процентах
type TaxRateSet struct {
	TvaIntegrale       float64
	TvaSurMarge        float64
	ExonereDeTva       float64
	StandardMarginRate float64
}

// TaxRow - строка таблицы ставок
type TaxRow struct {
	Key   string
	Name  string
	Value string
}

// TaxForm - ставки в том виде, как их прислала форма (ключ -> строка)
type TaxForm struct {
	TvaIntegrale       string `form:"tvaIntegrale" json:"tvaIntegrale" validate:"numeric-rate"`
	TvaSurMarge        string `form:"tvaSurMarge" json:"tvaSurMarge" validate:"numeric-rate"`
	ExonereDeTva       string `form:"exonereDeTva" json:"exonereDeTva" validate:"numeric-rate"`
	StandardMarginRate string `form:"standardMarginRate" json:"standardMarginRate" validate:"numeric-rate"`
}

// Rows - строки для таблицы в фиксированном порядке
func (s TaxRateSet) Rows() []TaxRow {
	return []TaxRow{
		{Key: TaxKeyTvaIntegrale, Name: "TVA Intégrale", Value: FormatNumber(s.TvaIntegrale)},
		{Key: TaxKeyTvaSurMarge, Name: "TVA sur Marge", Value: FormatNumber(s.TvaSurMarge)},
		{Key: TaxKeyExonereDeTva, Name: "Exonéré de TVA", Value: FormatNumber(s.ExonereDeTva)},
		{Key: TaxKeyStandardMarginRate, Name: "Standard Margin Rate", Value: FormatNumber(s.StandardMarginRate)},
	}
}

// Rows - строки для повторного показа формы с введенными значениями
func (f TaxForm) Rows() []TaxRow {
	rows := TaxRateSet{}.Rows()
	values := map[string]string{
		TaxKeyTvaIntegrale:       f.TvaIntegrale,
		TaxKeyTvaSurMarge:        f.TvaSurMarge,
		TaxKeyExonereDeTva:       f.ExonereDeTva,
		TaxKeyStandardMarginRate: f.StandardMarginRate,
	}
	for i := range rows {
		rows[i].Value = values[rows[i].Key]
	}
	return rows
}

// RateSet переводит строки формы в числа (пустое = 0)
func (f TaxForm) RateSet() TaxRateSet {
	return TaxRateSet{
		TvaIntegrale:       ParseNumber(f.TvaIntegrale),
		TvaSurMarge:        ParseNumber(f.TvaSurMarge),
		ExonereDeTva:       ParseNumber(f.ExonereDeTva),
		StandardMarginRate: ParseNumber(f.StandardMarginRate),
	}
}
