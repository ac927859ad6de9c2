package in

import (
	"context"

	"liftlog/internal/modules/program/dto"
	programin "liftlog/internal/modules/program/port/in"
)

type CLIHandler struct {
	usecase programin.Usecase
}

func NewCLIHandler(usecase programin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListDays(ctx context.Context) ([]dto.DayOutput, error) {
	return h.usecase.ListDays(ctx)
}

func (h CLIHandler) GetDay(ctx context.Context, key string) (dto.DayOutput, error) {
	return h.usecase.GetDay(ctx, key)
}

func (h CLIHandler) Rules(ctx context.Context) dto.RulesOutput {
	return h.usecase.Rules(ctx)
}
