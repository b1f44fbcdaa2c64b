package controllers

import (
	"bookwell-service/internal/app/config"
	"bookwell-service/internal/app/contracts"
	"bookwell-service/internal/pkg/constvars"
	"bookwell-service/internal/pkg/dto/requests"
	"bookwell-service/internal/pkg/exceptions"
	"bookwell-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
	InternalConfig      *config.InternalConfig
}

func NewAvailabilityController(
	logger *zap.Logger,
	availabilityUsecase contracts.AvailabilityUsecase,
	internalConfig *config.InternalConfig,
) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *AvailabilityController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AvailabilityController.GetAvailability requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	query := &requests.AvailabilityQuery{
		ServiceID: r.URL.Query().Get("service_id"),
		Date:      r.URL.Query().Get("date"),
		Timezone:  r.URL.Query().Get("timezone"),
		StaffID:   r.URL.Query().Get("staff_id"),
	}
	ctrl.Log.Info("AvailabilityController.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, query),
	)

	if err := utils.ValidateStruct(query); err != nil {
		ctrl.Log.Warn("AvailabilityController.GetAvailability validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.AvailabilityUsecase.GenerateSlots(ctx, query)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.GetAvailability AvailabilityUsecase.GenerateSlots error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AvailabilityController.GetAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(response)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, response)
}
