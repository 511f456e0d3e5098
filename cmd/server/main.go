package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Filichkin/Blogicum/internal/blog"
	"github.com/Filichkin/Blogicum/internal/comment"
	"github.com/Filichkin/Blogicum/internal/config"
	"github.com/Filichkin/Blogicum/internal/engagement"
	"github.com/Filichkin/Blogicum/internal/follow"
	blogicumhttp "github.com/Filichkin/Blogicum/internal/http"
	"github.com/Filichkin/Blogicum/internal/storage/memory"
	"github.com/Filichkin/Blogicum/internal/storage/postgres"
	"github.com/Filichkin/Blogicum/internal/user"
)

func main() {
	storageType := flag.String("storage", "memory", "storage backend: memory or postgres")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	var postStore blog.PostStorage
	var commentStore comment.CommentStorage
	var likeStore engagement.LikeStorage
	var followStore follow.FollowStorage
	var userStore user.UserStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			log.Fatalf("failed to init database: %v", err)
		}
		if err := postgres.Migrate(postgres.DB); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Info("using PostgreSQL storage")
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()
		likeStore = postgres.NewLikePostgresStorage()
		followStore = postgres.NewFollowPostgresStorage()
		userStore = postgres.NewUserPostgresStorage()

	case "memory":
		log.Info("using in-memory storage")
		userMem := memory.NewUserMemoryStorage()
		postMem := memory.NewPostMemoryStorage(userMem)
		commentMem := memory.NewCommentMemoryStorage(postMem)
		postMem.SetCommentCounter(commentMem)

		userStore = userMem
		postStore = postMem
		commentStore = commentMem
		likeStore = memory.NewLikeMemoryStorage(postMem, commentMem)
		followStore = memory.NewFollowMemoryStorage(userMem)

	default:
		log.Fatalf("unknown storage type: %s", *storageType)
	}

	handler := &blogicumhttp.Handler{
		PostStore:    postStore,
		CommentStore: commentStore,
		LikeStore:    likeStore,
		FollowStore:  followStore,
		UserStore:    userStore,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	blogicumhttp.SetupRoutes(router, handler, log)

	port := config.GetEnvDefault("PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// запуск HTTP сервера в goroutine, основной поток ждет сигнала
	go func() {
		log.Infof("server listening on :%s", port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			log.Errorf("failed to close database: %v", err)
		}
	}

	log.Info("server stopped")
}
