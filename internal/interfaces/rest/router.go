package rest_interface

import (
	"github.com/gin-gonic/gin"
	appconfig "github.com/vulpemventures/coinpurse/internal/app-config"
)

// newRouter returns the gin engine serving the REST gateway, along with the
// hub streaming events over websocket. The app config must be already
// validated.
func newRouter(appConfig *appconfig.AppConfig) (*gin.Engine, *eventHub) {
	h := &handler{
		walletSvc:  appConfig.WalletService(),
		calcSvc:    appConfig.CalculatorService(),
		historySvc: appConfig.HistoryService(),
	}
	hub := newEventHub(appConfig.RepoManager())

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	v1 := router.Group("/v1")
	v1.GET("/info", h.getInfo)
	v1.GET("/currencies", h.listCurrencies)
	v1.GET("/events", hub.streamEvents)

	wallets := v1.Group("/wallets/:country")
	wallets.GET("", h.getWallet)
	wallets.DELETE("", h.resetWallet)
	wallets.POST("/coins", h.addCoins)
	wallets.POST("/calculate", h.calculate)
	wallets.POST("/spend", h.spend)
	wallets.GET("/history", h.getHistory)
	wallets.POST("/history", h.addRecord)
	wallets.DELETE("/history", h.resetHistory)

	return router, hub
}
