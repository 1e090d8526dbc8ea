package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/core/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	service portssvc.ConversionSvcFacade
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	live := NewMockRateFetcher(domain.RateSourceLive)
	rates := usdRates(now)
	rates[0].Change = dec("0.05")
	rates[0].ChangePercent = dec("0.4")
	live.On("FetchRates", mock.Anything, "USD").Return(rates, nil).Once()

	store := services.NewRateStore(live, nil, nil, services.RateStoreConfig{Base: "USD", Now: func() time.Time { return now }})
	_, err := store.Refresh(context.Background())
	suite.Require().NoError(err)
	suite.service = services.NewConversionService(store)
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}

func (suite *ConversionServiceTestSuite) TestCreateBoard_DefaultPairs() {
	board, err := suite.service.CreateBoard(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(board.Pairs, 3)

	suite.Equal("USD", board.Pairs[0].FromCurrency)
	suite.Equal("GHS", board.Pairs[0].ToCurrency)
	suite.Equal("1000", board.Pairs[0].Amount.String())
	suite.Equal("NGN", board.Pairs[1].ToCurrency)
	suite.Equal("500", board.Pairs[1].Amount.String())
	suite.Equal("KES", board.Pairs[2].ToCurrency)
	for _, p := range board.Pairs {
		suite.True(p.IsVisible)
		suite.NotEmpty(p.ID)
	}
}

func (suite *ConversionServiceTestSuite) TestQuotes() {
	ctx := context.Background()
	board, err := suite.service.CreateBoard(ctx)
	suite.Require().NoError(err)

	quotes, err := suite.service.Quotes(ctx, board.ID)
	suite.Require().NoError(err)
	suite.Require().Len(quotes, 3)

	ghs := quotes[0]
	suite.Require().NotNil(ghs.Rate)
	suite.Equal("12450", ghs.ConvertedAmount.String())
	suite.Equal("12.450000", ghs.Display)
	suite.Equal("0.4", ghs.Change.ChangePercent.String())

	// USD/KES is not in the rate table
	kes := quotes[2]
	suite.Nil(kes.Rate)
	suite.Nil(kes.ConvertedAmount)
	suite.Equal(services.QuoteUnavailable, kes.Display)
	suite.True(kes.Change.Change.IsZero())
}

func (suite *ConversionServiceTestSuite) TestAddUpdateRemovePair() {
	ctx := context.Background()
	board, err := suite.service.CreateBoard(ctx)
	suite.Require().NoError(err)

	board, err = suite.service.AddPair(ctx, board.ID, dto.AddConversionPairRequest{})
	suite.Require().NoError(err)
	suite.Require().Len(board.Pairs, 4)
	added := board.Pairs[3]
	suite.Equal("USD", added.FromCurrency)
	suite.Equal("EUR", added.ToCurrency)
	suite.Equal("1000", added.Amount.String())

	amount := dec("250")
	hidden := false
	board, err = suite.service.UpdatePair(ctx, board.ID, added.ID, dto.UpdateConversionPairRequest{Amount: &amount, IsVisible: &hidden})
	suite.Require().NoError(err)
	suite.Equal("250", board.Pairs[3].Amount.String())
	suite.False(board.Pairs[3].IsVisible)

	quotes, err := suite.service.Quotes(ctx, board.ID)
	suite.Require().NoError(err)
	suite.Equal("230", quotes[3].ConvertedAmount.String())

	board, err = suite.service.RemovePair(ctx, board.ID, added.ID)
	suite.Require().NoError(err)
	suite.Len(board.Pairs, 3)

	_, err = suite.service.RemovePair(ctx, board.ID, added.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ConversionServiceTestSuite) TestReturnedBoardIsACopy() {
	ctx := context.Background()
	board, err := suite.service.CreateBoard(ctx)
	suite.Require().NoError(err)
	board.Pairs[0].ToCurrency = "JPY"

	stored, err := suite.service.GetBoard(ctx, board.ID)
	suite.Require().NoError(err)
	suite.Equal("GHS", stored.Pairs[0].ToCurrency)
}

func (suite *ConversionServiceTestSuite) TestValidationAndNotFound() {
	ctx := context.Background()
	_, err := suite.service.GetBoard(ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	board, err := suite.service.CreateBoard(ctx)
	suite.Require().NoError(err)
	negative := dec("-5")
	_, err = suite.service.AddPair(ctx, board.ID, dto.AddConversionPairRequest{Amount: &negative})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = suite.service.UpdatePair(ctx, board.ID, board.Pairs[0].ID, dto.UpdateConversionPairRequest{Amount: &negative})
	suite.ErrorIs(err, apperrors.ErrValidation)
}
