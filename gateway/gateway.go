package gateway

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/warehouse/pkg/config"
	"github.com/example/warehouse/pkg/models"
	"github.com/example/warehouse/pkg/store"
	"github.com/example/warehouse/pkg/warehouse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gateway is the HTTP presentation adapter over the catalog store and
// the transaction engine. Engine outcomes map onto HTTP statuses:
// success is 200 with the re-read order state, a business-rule
// violation is 409 with the engine's message.
//
// The store and engine assume a single caller, so every mutating
// handler runs under one mutex.
type Gateway struct {
	config *config.Config
	store  *store.Store
	engine *warehouse.Engine
	logger *zap.Logger
	router *gin.Engine

	mu sync.Mutex
}

func NewGateway(cfg *config.Config, logger *zap.Logger, st *store.Store, engine *warehouse.Engine) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Gateway{
		config: cfg,
		store:  st,
		engine: engine,
		logger: logger,
		router: router,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := g.router.Group("/api/v1")
	{
		// Product routes
		products := v1.Group("/products")
		{
			products.POST("", g.createProduct)
			products.GET("/:id", g.getProduct)
			products.GET("", g.listProducts)
			products.PUT("/:id", g.updateProduct)
		}

		// Order routes
		orders := v1.Group("/orders")
		{
			orders.POST("", g.createOrder)
			orders.GET("/:id", g.getOrder)
			orders.GET("", g.listOrders)
			orders.DELETE("/:id", g.deleteOrder)
			orders.POST("/:id/items", g.addItem)
			orders.POST("/:id/pay", g.payOrder)
			orders.POST("/:id/ship", g.shipOrder)
		}

		// Snapshot routes
		snapshot := v1.Group("/snapshot")
		{
			snapshot.POST("/save", g.saveSnapshot)
			snapshot.POST("/load", g.loadSnapshot)
		}
	}
}

func (g *Gateway) Start() error {
	addr := g.config.Server.Addr()
	g.logger.Info("Gateway starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// Handler exposes the router for tests.
func (g *Gateway) Handler() http.Handler {
	return g.router
}

type createProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

func (g *Gateway) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock cannot be negative"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	product := &models.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}
	g.store.AddProduct(product)

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
		"message": "product added to catalog",
	})
}

func (g *Gateway) getProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	product, ok := g.store.GetProduct(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (g *Gateway) listProducts(c *gin.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	products := g.store.Products()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

func (g *Gateway) updateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req createProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
		return
	}
	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock cannot be negative"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	product, ok := g.store.GetProduct(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Stock = req.Stock
	g.store.UpdateProduct(product)

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"message": "product updated",
	})
}

type createOrderRequest struct {
	Customer string `json:"customer"`
}

func (g *Gateway) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := strings.TrimSpace(req.Customer)
	if customer == "" {
		customer = "New customer"
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order := &models.Order{
		Customer:  customer,
		CreatedAt: time.Now(),
		Status:    models.StatusNew,
	}
	g.store.AddOrder(order)

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"message": "order created",
	})
}

func (g *Gateway) getOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.store.GetOrder(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

func (g *Gateway) listOrders(c *gin.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	orders := g.store.Orders()
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

func (g *Gateway) deleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.store.DeleteOrder(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "order deleted",
	})
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (g *Gateway) addItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req addItemRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.store.GetOrder(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	product, ok := g.store.GetProduct(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	ok, message := g.engine.AddProductToOrder(order, product, req.Quantity)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": message})
		return
	}
	g.store.UpdateOrder(order)

	resp := orderView(order)
	resp["success"] = true
	resp["message"] = message
	c.JSON(http.StatusOK, resp)
}

func (g *Gateway) payOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.store.GetOrder(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	ok, message := g.engine.PayOrder(order)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": message})
		return
	}
	g.store.UpdateOrder(order)

	resp := orderView(order)
	resp["success"] = true
	resp["message"] = message
	c.JSON(http.StatusOK, resp)
}

func (g *Gateway) shipOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.store.GetOrder(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	ok, message := g.engine.ShipOrder(order)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": message})
		return
	}
	g.store.UpdateOrder(order)

	resp := orderView(order)
	resp["success"] = true
	resp["message"] = message
	c.JSON(http.StatusOK, resp)
}

func (g *Gateway) saveSnapshot(c *gin.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	path := g.config.Data.SnapshotPath
	if err := g.store.SaveFile(path); err != nil {
		g.logger.Error("Failed to save snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "data saved to " + path,
	})
}

func (g *Gateway) loadSnapshot(c *gin.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	path := g.config.Data.SnapshotPath
	if err := g.store.LoadFile(path); err != nil {
		g.logger.Error("Failed to load snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "data loaded from " + path,
	})
}

// orderView re-reads the derived order fields after a mutating call.
func orderView(order *models.Order) gin.H {
	return gin.H{
		"order":      order,
		"total":      order.Total(),
		"is_paid":    order.IsPaid(),
		"item_count": len(order.Items),
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
