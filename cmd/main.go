package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cart_service/config"
	"cart_service/internal/delivery"
	"cart_service/internal/pricing"
	"cart_service/internal/repository"
	"cart_service/internal/usecase"
)

// HTML content for the test page
const htmlTestPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Cart Service API Test Page</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-patch { color: #fca130; }
        .method-put { color: #fca130; }
        .method-delete { color: #f93e3e; }
        a { color: #007bff; text-decoration: none; }
        a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <h1>Cart Service API Endpoints</h1>
    <p>Base URL: <code>http://localhost:8082</code></p>

    <h2>Catalog API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/products">/products</a></code> - List products. Query parameters: <code>q</code> (id/name substring), <code>category</code> (exact match, "All" = no filter). (e.g., <a href="/products?q=laptop">/products?q=laptop</a>, <a href="/products?category=Books">/products?category=Books</a>)</li>
        <li><span class="method method-get">GET</span> <code><a href="/categories">/categories</a></code> - List the distinct, sorted category names.</li>
    </ul>

    <h2>Cart API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/cart">/cart</a></code> - Current cart lines and totals.</li>
        <li><span class="method method-post">POST</span> <code>/cart/items</code> - Add an item. JSON body: <code>{"product_id": "string", "quantity": int}</code> (merges into an existing line).</li>
        <li><span class="method method-patch">PATCH</span> <code>/cart/items/{id}</code> - Set a line's quantity. JSON body: <code>{"quantity": int}</code> (0 or less removes the line).</li>
        <li><span class="method method-patch">PATCH</span> <code>/cart/items</code> - Batch quantity update. JSON body: <code>[{"product_id": "string", "quantity": int}, ...]</code></li>
        <li><span class="method method-delete">DELETE</span> <code>/cart/items/{id}</code> - Remove a line.</li>
        <li><span class="method method-delete">DELETE</span> <code>/cart</code> - Clear the cart.</li>
        <li><span class="method method-post">POST</span> <code>/cart/save</code> - Persist the cart and settings snapshots.</li>
        <li><span class="method method-post">POST</span> <code>/cart/load</code> - Replace the cart from the saved snapshot (reports skipped records).</li>
        <li><span class="method method-post">POST</span> <code>/cart/checkout</code> - Save and return the final totals (rejects an empty cart).</li>
        <li><span class="method method-get">GET</span> <code><a href="/cart/receipt">/cart/receipt</a></code> - Plain-text receipt.</li>
    </ul>

    <h2>Settings API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/settings">/settings</a></code> - Current discount code and shipping fee.</li>
        <li><span class="method method-put">PUT</span> <code>/settings</code> - Update both. JSON body: <code>{"discount": "SAVE10", "shipping": 50.00}</code> (try SAVE10, SAVE20, FREESHIP, STUDENT5).</li>
    </ul>

</body>
</html>
`

func serveTestPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlTestPageContent))
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logger.Warnf("Invalid LOG_LEVEL %q, keeping info", cfg.LogLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting Cart Service...")

	// --- Catalog ---
	var catalogRepo *repository.InMemoryCatalogRepository
	if cfg.CatalogCSV != "" {
		f, err := os.Open(cfg.CatalogCSV)
		if err != nil {
			logger.Fatalf("FATAL: Failed to open catalog CSV %s: %v", cfg.CatalogCSV, err)
		}
		catalogRepo, err = repository.NewCSVCatalogRepository(f, logger)
		_ = f.Close()
		if err != nil {
			logger.Fatalf("FATAL: Failed to load catalog CSV %s: %v", cfg.CatalogCSV, err)
		}
	} else {
		catalogRepo = repository.NewSeedCatalogRepository(logger)
	}

	// --- Dependency Injection ---
	engine := pricing.NewEngine(decimal.NewFromFloat(cfg.TaxRate))
	cartCodec := repository.NewCartSnapshotCodec(catalogRepo, logger)
	settingsCodec := repository.NewSettingsCodec(logger)
	logger.Info("Pricing engine and codecs initialized.")

	cartUseCase := usecase.NewCartUseCase(
		catalogRepo, engine, cartCodec, settingsCodec,
		cfg.CartSnapshotPath(), cfg.SettingsPath(), logger,
	)
	logger.Info("Use cases initialized.")

	catalogHandler := delivery.NewCatalogHandler(cartUseCase, logger)
	cartHandler := delivery.NewCartHandler(cartUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Request received")
		c.Next()
		logger.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Info("Request completed")
	})

	// Route Registration
	router.GET("/", serveTestPage)
	logger.Info("Registered HTML test page route at /")

	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	logger.Info("API Routes registered.")

	// Start Server
	logger.Infof("Starting server on port %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
