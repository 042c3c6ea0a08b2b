package model

import (
	"errors"
	"fmt"
)

// Типизированные бизнес-ошибки. Хендлеры мапят их на HTTP-статусы,
// сервисы никогда не паникуют на ожидаемых условиях.
var (
	// ErrInvalidInput - некорректные входные данные операции
	ErrInvalidInput = errors.New("model: invalid input")

	// ErrInvalidTransition - операция запрошена из состояния, которое её не допускает
	ErrInvalidTransition = errors.New("model: invalid transition")

	// ErrNotFound - запрошенная сущность не существует
	ErrNotFound = errors.New("model: not found")

	// ErrAlreadyRegistered - участник уже в списке или в листе ожидания
	ErrAlreadyRegistered = errors.New("model: member already registered")

	// ErrNotRegistered - участника нет ни в списке, ни в листе ожидания
	ErrNotRegistered = errors.New("model: member not registered")

	// ErrDuplicateOccurrence - повторная материализация пары (schedule_id, date).
	// Нормально это не возникает, сигнализирует о баге коллаборатора.
	ErrDuplicateOccurrence = errors.New("model: duplicate occurrence")
)

// invalidInputf оборачивает ErrInvalidInput с пояснением
func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// invalidTransitionf оборачивает ErrInvalidTransition с пояснением
func invalidTransitionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}
