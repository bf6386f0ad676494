package rest_interface

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/application"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
)

type handler struct {
	walletSvc  *application.WalletService
	calcSvc    *application.CalculatorService
	historySvc *application.HistoryService
}

func country(c *gin.Context) string {
	return strings.ToUpper(c.Param("country"))
}

// fail writes the error response matching the kind of the given error.
func fail(c *gin.Context, err error) {
	switch {
	case application.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
	case application.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{err.Error()})
	default:
		log.WithError(err).Errorf(
			"rest service: %s %s failed", c.Request.Method, c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, errorResponse{"internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
}

func (h *handler) getInfo(c *gin.Context) {
	info := h.walletSvc.GetInfo(c.Request.Context())
	c.JSON(http.StatusOK, infoResponse{info.Version, info.Commit, info.Date})
}

func (h *handler) listCurrencies(c *gin.Context) {
	currencies := h.walletSvc.ListCurrencies(c.Request.Context())
	list := make([]currencyResponse, 0, len(currencies))
	for _, cur := range currencies {
		list = append(list, fromCurrency(cur))
	}
	c.JSON(http.StatusOK, gin.H{"currencies": list})
}

func (h *handler) getWallet(c *gin.Context) {
	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), country(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fromWallet(wallet))
}

// resetWallet empties the wallet. With ?history=true the spend history is
// deleted too.
func (h *handler) resetWallet(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("history") != "true" {
		if err := h.walletSvc.ResetWallet(ctx, country(c)); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resetResponse{})
		return
	}

	count, err := h.walletSvc.ResetAll(ctx, country(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resetResponse{count})
}

func (h *handler) addCoins(c *gin.Context) {
	var req addCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	wallet, err := h.walletSvc.AddCoins(
		c.Request.Context(), country(c), req.Denomination, req.Delta,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fromWallet(wallet))
}

func (h *handler) calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	strategy := h.calcSvc.DefaultStrategy()
	if req.Strategy != "" {
		s, err := domain.ParseCoinSelectionStrategy(req.Strategy)
		if err != nil {
			badRequest(c, err)
			return
		}
		strategy = s
	}

	ctx := c.Request.Context()
	if !req.Spend {
		result, err := h.calcSvc.Calculate(ctx, country(c), req.Amount, strategy)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, fromCalculation(result))
		return
	}

	result, record, err := h.calcSvc.CalculateAndSpend(
		ctx, country(c), req.Amount, strategy,
	)
	if err != nil {
		fail(c, err)
		return
	}
	res := fromCalculation(result)
	if record != nil {
		r := fromRecord(record)
		res.Record = &r
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) spend(c *gin.Context) {
	var req spendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	record, err := h.calcSvc.Spend(c.Request.Context(), country(c), toCoins(req.Combo))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fromRecord(record))
}

func (h *handler) getHistory(c *gin.Context) {
	records, err := h.historySvc.GetHistory(c.Request.Context(), country(c))
	if err != nil {
		fail(c, err)
		return
	}
	list := make([]recordResponse, 0, len(records))
	for _, r := range records {
		list = append(list, fromRecord(r))
	}
	c.JSON(http.StatusOK, historyResponse{list})
}

func (h *handler) addRecord(c *gin.Context) {
	var req addRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	record, err := h.historySvc.AddRecord(
		c.Request.Context(), country(c), toCoins(req.Combo), req.Remaining,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromRecord(record))
}

func (h *handler) resetHistory(c *gin.Context) {
	count, err := h.historySvc.ResetHistory(c.Request.Context(), country(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resetResponse{count})
}
