package recurrence

import (
	"fmt"

	"github.com/fitdesk/gym_admin/internal/model"
)

// invalidPattern помечает ошибку паттерна как model.ErrInvalidInput,
// чтобы вызывающие различали её через errors.Is
func invalidPattern(format string, args ...any) error {
	return fmt.Errorf("%w: %s", model.ErrInvalidInput, fmt.Sprintf(format, args...))
}
