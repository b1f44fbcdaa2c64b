package contracts

import (
	"bookwell-service/internal/pkg/dto/requests"
	"bookwell-service/internal/pkg/dto/responses"
	"context"
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, request *requests.CreateBookingRequest) (*responses.Appointment, error)
	CreateHold(ctx context.Context, request *requests.CreateHoldRequest) (*responses.SlotHold, error)
}
