package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/services/escrow/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentResultHandler_HandlePaymentResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockEscrowUC(ctrl)
	h := NewPaymentResultHandler(mockUC, nil)

	result := models.PaymentResult{Reference: "ext-1", Succeeded: true}
	data, err := json.Marshal(result)
	require.NoError(t, err)

	mockUC.EXPECT().ConfirmExternalResult(gomock.Any(), result).Return(nil)

	assert.NoError(t, h.handlePaymentResult(context.Background(), data))
}

func TestPaymentResultHandler_RetriesOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockEscrowUC(ctrl)
	h := NewPaymentResultHandler(mockUC, nil)

	mockUC.EXPECT().ConfirmExternalResult(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	err := h.handlePaymentResult(context.Background(), []byte(`{"reference":"ext-1","succeeded":false}`))
	assert.Error(t, err)
}

func TestPaymentResultHandler_DropsMalformedMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPaymentResultHandler(mocks.NewMockEscrowUC(ctrl), nil)

	assert.NoError(t, h.handlePaymentResult(context.Background(), []byte(`not json`)))
}
