package logitrackserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	inventoryapp "github.com/logitrack/logitrack/internal/domains/inventory/application"
	orderapp "github.com/logitrack/logitrack/internal/domains/orders/application"
	apierrors "github.com/logitrack/logitrack/internal/shared/errors"
	"github.com/logitrack/logitrack/internal/shared/validation"
)

var responder = apierrors.NewChainedResponder("", inventoryProblem, orderProblem)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func inventoryProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, inventoryapp.ErrInvalidInput):
		return validationProblem(err), true
	case errors.Is(err, inventoryapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, inventoryapp.ErrAlreadyExists):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, inventoryapp.ErrPersistence):
		return apierrors.ErrInternal.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func orderProblem(err error) (apierrors.ProblemDetail, bool) {
	var unknown *orderapp.UnknownItemsError
	switch {
	case errors.Is(err, orderapp.ErrInvalidInput):
		return validationProblem(err), true
	case errors.As(err, &unknown):
		return apierrors.NewUnknownItemsProblem(err.Error(), unknown.IDs), true
	case errors.Is(err, orderapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrAlreadyExists):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, orderapp.ErrPersistence):
		return apierrors.ErrInternal.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func validationProblem(err error) apierrors.ProblemDetail {
	problem := apierrors.ErrValidation.WithDetail(err.Error())
	if fields := validation.Fields(err); fields != nil {
		problem = problem.WithExtension("fields", fields)
	}
	return problem
}

// parseIDParam binds a simple-style integer path parameter, answering 400 when malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return 0, false
	}
	return id, true
}
