package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/adapters/kv"
	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/core/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	store    *kv.MemoryStore
	rates    portssvc.RateStoreSvcFacade
	defaults domain.AppSettings
	service  portssvc.SettingsSvcFacade
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.store = kv.NewMemoryStore()
	suite.rates = services.NewRateStore(nil, nil, nil, services.RateStoreConfig{Base: "USD", RefreshInterval: time.Hour})
	suite.defaults = domain.AppSettings{AutoRefresh: true, RefreshInterval: domain.Duration(30 * time.Second), DefaultFeeRate: dec("0")}
	suite.service = services.NewSettingsService(context.Background(), suite.store, suite.defaults, suite.rates)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (suite *SettingsServiceTestSuite) TestDefaultsAppliedToRateStore() {
	suite.Equal(suite.defaults, suite.service.GetSettings(context.Background()))
	status := suite.rates.Status()
	suite.True(status.AutoRefresh)
	suite.Equal(domain.Duration(30*time.Second), status.RefreshInterval)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_PersistsAndApplies() {
	off := false
	interval := domain.Duration(time.Minute)
	fee := dec("2.5")

	got, err := suite.service.UpdateSettings(context.Background(), dto.UpdateSettingsRequest{
		AutoRefresh:     &off,
		RefreshInterval: &interval,
		DefaultFeeRate:  &fee,
	})

	suite.Require().NoError(err)
	suite.False(got.AutoRefresh)
	suite.False(suite.rates.Status().AutoRefresh)
	suite.Equal(interval, suite.rates.Status().RefreshInterval)

	reloaded := services.NewSettingsService(context.Background(), suite.store, suite.defaults, nil)
	suite.Equal(got.RefreshInterval, reloaded.GetSettings(context.Background()).RefreshInterval)
	suite.True(fee.Equal(reloaded.GetSettings(context.Background()).DefaultFeeRate))
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_Validation() {
	tooShort := domain.Duration(100 * time.Millisecond)
	_, err := suite.service.UpdateSettings(context.Background(), dto.UpdateSettingsRequest{RefreshInterval: &tooShort})
	suite.ErrorIs(err, apperrors.ErrValidation)

	fee := dec("100")
	_, err = suite.service.UpdateSettings(context.Background(), dto.UpdateSettingsRequest{DefaultFeeRate: &fee})
	suite.ErrorIs(err, apperrors.ErrValidation)

	negative := dec("-1")
	_, err = suite.service.UpdateSettings(context.Background(), dto.UpdateSettingsRequest{DefaultFeeRate: &negative})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Equal(suite.defaults, suite.service.GetSettings(context.Background()))
}
