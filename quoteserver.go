package quoteserver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/robmarkaryan/quoteserver/api/quotesapi"
	"github.com/robmarkaryan/quoteserver/storage/model"
)

// QuoteServer is the http application serving the quotes API on top of a
// set of storage backends.
type QuoteServer struct {
	server     *fiber.App
	serverConf ServerConf
	storages   model.Backends
}

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   20 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   handleError,
	Network:        "tcp",
}

// handleError renders uncaught errors as the API's JSON error payload;
// internals are formatted into a message, never returned raw.
func handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return ctx.Status(code).JSON(quotesapi.ErrorServerError(err.Error()))
}

// NewQuoteServer creates a new QuoteServer serving the passed storage
// backends.
func NewQuoteServer(serverConf ServerConf, storages model.Backends, apiOpts *quotesapi.Options) *QuoteServer {
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		FiberServerConfig.TrustedProxies = serverConf.TrustedProxies
		FiberServerConfig.EnableTrustedProxyCheck = true
	}
	FiberServerConfig.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(FiberServerConfig)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(logger.New())
	server.Use(requestid.New())

	quotesapi.Register(server, storages, apiOpts)

	return &QuoteServer{
		server:     server,
		serverConf: serverConf,
		storages:   storages,
	}
}

// App returns the underlying fiber.App; used by tests to issue requests
// without a listening socket.
func (qs *QuoteServer) App() *fiber.App {
	return qs.server
}

// Listen starts an http server at the specific address for serving all the
// necessary endpoints
func (qs *QuoteServer) Listen(addr string) error {
	return qs.server.Listen(addr)
}

// Start runs the server according to its ServerConf, optionally with TLS
// and an http→https redirect. It blocks until the server fails.
func (qs *QuoteServer) Start() {
	conf := qs.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		log.WithError(qs.server.Listen(fmt.Sprintf(":%d", conf.Port))).Fatal()
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(":80")).Fatal()
		}()
	}
	log.Info("TLS enabled, starting https server on port 443")
	log.WithError(qs.server.ListenTLS(":443", conf.TLS.Cert, conf.TLS.Key)).Fatal()
}
