package presentation

import (
	"go.uber.org/zap"

	"presentation-service-go/internal/pkg/logger"
)

// Validator проверяет входные данные для списка запрошенных инфоблоков
type Validator interface {
	Validate(blocks []BlockDescriptor, req *Request) ValidationResult
}

// BlockValidator проверяет данные одного блока. nil означает отсутствие ошибок
type BlockValidator func(b BlockDescriptor, req *Request) []BlockError

var errInvalidInput = BlockError{
	DataType: ErrorDataInputData,
	Property: "none",
	Message:  "входные данные заданы неверно",
}

// OfferValidator валидатор шаблона предложения помещений
type OfferValidator struct {
	validators map[BlockKind]BlockValidator
}

// NewOfferValidator создает валидатор со стандартным набором проверок блоков
func NewOfferValidator() *OfferValidator {
	return &OfferValidator{
		validators: map[BlockKind]BlockValidator{
			BlockHeader:           validateHeader,
			BlockBuildingHeader:   validateBuildingHeader,
			BlockBuildingLocation: validateBuildingLocation,
			BlockBuildingInfo:     validateBuildingInfo,
			BlockBuildingPhoto:    validateBuildingPhoto,
			BlockAreaCommercial:   validateAreaCommercial,
			BlockAreaPhoto:        validateAreaPhoto,
			BlockAreaSchema:       validateAreaSchema,
			BlockBrokerContacts:   validateBrokerContacts,
		},
	}
}

// Validate возвращает копии блоков с заполненными ошибками. Входной срез не изменяется.
// Пустой список блоков считается ошибкой
func (v *OfferValidator) Validate(blocks []BlockDescriptor, req *Request) ValidationResult {
	if len(blocks) == 0 {
		return ValidationResult{Failure: true, BlocksWithErrors: []BlockDescriptor{}}
	}
	if req == nil {
		req = &Request{}
	}

	result := ValidationResult{BlocksWithErrors: make([]BlockDescriptor, 0, len(blocks))}
	for _, block := range blocks {
		checked := block
		checked.Errors = v.validateBlock(block, req)
		if checked.HasErrors() {
			result.Failure = true
		}
		result.BlocksWithErrors = append(result.BlocksWithErrors, checked)
	}
	return result
}

func (v *OfferValidator) validateBlock(block BlockDescriptor, req *Request) (errs []BlockError) {
	validate, ok := v.validators[block.BlockID]
	if !ok {
		return []BlockError{errInvalidInput}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Block validator panicked",
				zap.String("block_id", string(block.BlockID)),
				zap.String("realty_id", block.RealtyID),
				zap.Any("panic", r))
			errs = []BlockError{errInvalidInput}
		}
	}()

	errs = validate(block, req)
	if len(errs) == 0 {
		return nil
	}
	return errs
}
