package dto

// CorrectionRequest - параметры правила коррекции; используется и для
// предпросмотра, и для создания
type CorrectionRequest struct {
	IncorrectValue string `json:"incorrect_value" validate:"required"`
	CorrectValue   string `json:"correct_value" validate:"required"`
	PartType       string `json:"part_type" validate:"required,oneof=country city neighborhood"`
}
