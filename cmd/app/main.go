package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/tvu-dev/diamond-shop-backend/internal/cart"
	"github.com/tvu-dev/diamond-shop-backend/internal/category"
	"github.com/tvu-dev/diamond-shop-backend/internal/checkout"
	"github.com/tvu-dev/diamond-shop-backend/internal/config"
	"github.com/tvu-dev/diamond-shop-backend/internal/order"
	"github.com/tvu-dev/diamond-shop-backend/internal/payment"
	"github.com/tvu-dev/diamond-shop-backend/internal/product"
	"github.com/tvu-dev/diamond-shop-backend/internal/quiz"
	"github.com/tvu-dev/diamond-shop-backend/internal/user"
	"github.com/tvu-dev/diamond-shop-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	app.Use(logger.New())
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	bootstrapSchema(db)

	sessionStore, urlStore := openStores(cfg.RedisAddr)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(db), productService, userService)

	vnpay := payment.NewVNPay(cfg.VNPay)
	momo := payment.NewMomo(cfg.Momo)
	paymentService := payment.NewService(vnpay, orderService, cartService, vnpay, momo)
	paymentHandler := payment.NewHandler(paymentService, urlStore)

	orderHandler := order.NewHandler(orderService, paymentService)

	checkoutService := checkout.NewService(sessionStore, cartService, orderService, paymentService, urlStore)
	checkoutHandler := checkout.NewHandler(checkoutService)

	quizService := quiz.NewService(quiz.NewPostgresRepository(db), productService)
	quizHandler := quiz.NewHandler(quizService)

	wishlistService := wishlist.NewService(wishlist.NewPostgresRepository(db), productService)
	wishlistHandler := wishlist.NewHandler(wishlistService)

	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	quizHandler.RegisterPublicRoutes(app)
	paymentHandler.RegisterPublicRoutes(app)
	// product routes last among the public set so /api/products/search wins
	// over the :id parameter route
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter: func(c *fiber.Ctx) bool {
			// catalog browsing and the quiz stay open for anonymous visitors
			if c.Method() != fiber.MethodGet {
				return false
			}
			p := c.Path()
			return strings.HasPrefix(p, "/api/products") ||
				strings.HasPrefix(p, "/api/category") ||
				strings.HasPrefix(p, "/api/questions")
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterRoutes(app)
	quizHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// openStores connects to redis for checkout sessions and cached payment
// urls. When redis is unreachable the service still comes up on in-memory
// stores; sessions then die with the process.
func openStores(addr string) (checkout.Store, payment.URLStore) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Printf("warning: redis unavailable at %s, using in-memory stores: %v\n", addr, err)
		return checkout.NewMemoryStore(), payment.NewMemoryURLStore()
	}
	return checkout.NewRedisStore(rdb), payment.NewRedisURLStore(rdb)
}

func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			password TEXT NOT NULL,
			full_name TEXT,
			phone TEXT,
			role TEXT NOT NULL DEFAULT 'customer',
			points INT NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			image TEXT,
			description TEXT,
			quantity INT NOT NULL DEFAULT 0,
			category_id INT NOT NULL DEFAULT 0,
			suitable_types TEXT[] NOT NULL DEFAULT '{}',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			user_id INT PRIMARY KEY,
			lines JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			account_id INT NOT NULL,
			username TEXT,
			status TEXT NOT NULL,
			total NUMERIC NOT NULL DEFAULT 0,
			payment_method TEXT NOT NULL,
			shipping_address TEXT,
			shipping_phone TEXT,
			receiver_name TEXT,
			applied_points INT NOT NULL DEFAULT 0,
			earned_points INT NOT NULL DEFAULT 0,
			details JSONB NOT NULL DEFAULT '[]',
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS wishlists (
			user_id INT PRIMARY KEY,
			product_ids INTEGER[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS options (
			id SERIAL PRIMARY KEY,
			question_id INT NOT NULL,
			label TEXT NOT NULL,
			suitable_type TEXT NOT NULL DEFAULT '',
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
