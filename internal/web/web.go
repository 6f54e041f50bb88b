package web

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fbriere/rmahjong/internal/async"
	"github.com/fbriere/rmahjong/internal/errutil"
	"github.com/fbriere/rmahjong/internal/whitelist"
	"github.com/gorilla/mux"
	"github.com/lonng/nex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

var logger = log.WithField("component", "http")

func init() {
	nex.SetErrorEncoder(encodeError)
}

// encodeError renders every failure as {code, error}.
func encodeError(err error) interface{} {
	return &nex.DefaultErrorMessage{
		Code:  errutil.Code(err),
		Error: err.Error(),
	}
}

func pongHandler() (string, error) {
	return "pong", nil
}

func logRequest(ctx context.Context, r *http.Request) (context.Context, error) {
	if uri := r.RequestURI; uri != "/ping" {
		logger.Debugf("Method=%s, RemoteAddr=%s URL=%s", r.Method, r.RemoteAddr, uri)
	}
	return ctx, nil
}

// ipFilter rejects clients outside the whitelist, when one is configured.
func ipFilter(ctx context.Context, r *http.Request) (context.Context, error) {
	if !whitelist.Enabled() {
		return ctx, nil
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !whitelist.VerifyIP(host) {
		logger.Warnf("rejected client %s", r.RemoteAddr)
		return ctx, errutil.ErrPermissionDenied
	}
	return ctx, nil
}

// NewHandler returns the evaluation service routes.
func NewHandler() http.Handler {
	router := mux.NewRouter()

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.Handle("/hand/waits", nex.Handler(waitsHandler).Before(logRequest, ipFilter)).Methods("POST")
	v1.Handle("/hand/settle", nex.Handler(settleHandler).Before(logRequest, ipFilter)).Methods("POST")
	v1.Handle("/hand/actions", nex.Handler(actionsHandler).Before(logRequest, ipFilter)).Methods("POST")
	v1.Handle("/hand/steal", nex.Handler(stealHandler).Before(logRequest, ipFilter)).Methods("POST")
	v1.Handle("/payment", nex.Handler(paymentHandler).Before(logRequest, ipFilter)).Methods("GET")

	router.Handle("/ping", nex.Handler(pongHandler))

	return accessControl(optionControl(router))
}

// Startup serves until SIGINT or SIGTERM.
func Startup() {
	if err := whitelist.Setup(viper.GetStringSlice("webserver.whitelist")); err != nil {
		logger.Errorf("whitelist disabled: %v", err)
	}

	addr := viper.GetString("webserver.addr")
	srv := &http.Server{Addr: addr, Handler: NewHandler()}

	logger.Infof("Web service addr: %s", addr)
	async.Run("http", func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http service stopped: %v", err)
		}
	})

	sg := make(chan os.Signal, 1)
	signal.Notify(sg, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	s := <-sg
	logger.Infof("got signal: %s", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
}
