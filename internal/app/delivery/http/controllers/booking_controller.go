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

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	InternalConfig *config.InternalConfig
}

func NewBookingController(
	logger *zap.Logger,
	bookingUsecase contracts.BookingUsecase,
	internalConfig *config.InternalConfig,
) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController.CreateBooking requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := &requests.CreateBookingRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Warn("BookingController.CreateBooking cannot decode request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctrl.Log.Info("BookingController.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		zap.String(constvars.LoggingStaffIDKey, request.StaffID),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Warn("BookingController.CreateBooking validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.CreateBooking(ctx, request)
	if err != nil {
		ctrl.Log.Error("BookingController.CreateBooking BookingUsecase.CreateBooking error",
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

	ctrl.Log.Info("BookingController.CreateBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBookingSuccessMessage, response)
}

func (ctrl *BookingController) CreateHold(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController.CreateHold requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := &requests.CreateHoldRequest{}
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Warn("BookingController.CreateHold cannot decode request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctrl.Log.Info("BookingController.CreateHold called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, request.ServiceID),
		zap.String(constvars.LoggingStaffIDKey, request.StaffID),
		zap.String(constvars.LoggingStartTimeKey, request.StartTime),
	)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Warn("BookingController.CreateHold validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.CreateHold(ctx, request)
	if err != nil {
		ctrl.Log.Error("BookingController.CreateHold BookingUsecase.CreateHold error",
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

	ctrl.Log.Info("BookingController.CreateHold succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotLockIDKey, response.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateHoldSuccessMessage, response)
}
