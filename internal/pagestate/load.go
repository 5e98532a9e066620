package pagestate

import (
	"context"
	"errors"
	"fmt"

	"admin_console/pkg/apperrors"
)

// Phase - стадия загрузки страницы
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// ErrStale - запрос отменен до того, как данные пришли. Рендерить нечего.
var ErrStale = errors.New("page request is no longer active")

// View - состояние страницы на один запрос
type View[T any] struct {
	Phase Phase
	Data  T
	Error string
}

// Ready - данные загружены полностью
func (v View[T]) Ready() bool {
	return v.Phase == PhaseReady
}

// Failed - страница показывает ошибку вместо формы
func (v View[T]) Failed() bool {
	return v.Phase == PhaseError
}

// Load выполняет fetch и переводит страницу в ready или error.
// Частичных данных не бывает: при ошибке Data остается нулевым.
// Если context запроса уже отменен, состояние не фиксируется и возвращается ErrStale.
func Load[T any](ctx context.Context, fetch func(context.Context) (T, error)) (view View[T], err error) {
	view.Phase = PhaseLoading
	defer func() {
		if view.Phase == PhaseLoading {
			view.Phase = PhaseError
			if view.Error == "" {
				view.Error = apperrors.UserMessage(err)
			}
		}
	}()

	data, fetchErr := fetch(ctx)

	if ctxErr := ctx.Err(); ctxErr != nil {
		var zero T
		view.Data = zero
		return view, fmt.Errorf("%w: %v", ErrStale, ctxErr)
	}

	if fetchErr != nil {
		view.Phase = PhaseError
		view.Error = apperrors.UserMessage(fetchErr)
		return view, fetchErr
	}

	view.Data = data
	view.Phase = PhaseReady
	return view, nil
}
