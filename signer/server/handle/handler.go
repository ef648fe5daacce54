package handle

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/inscription"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/inscription-c/pins/internal/signal"
)

// KeySigner is a signer that can tell which public key it signs for.
type KeySigner interface {
	inscription.Signer
	PubKey() []byte
}

type Options struct {
	addr        string
	enablePProf bool
	engine      *gin.Engine
	signer      KeySigner
	authToken   string
}

type Option func(*Options)

func WithAddr(addr string) Option {
	return func(options *Options) {
		options.addr = addr
	}
}

func WithEngine(g *gin.Engine) Option {
	return func(options *Options) {
		options.engine = g
	}
}

func WithSigner(signer KeySigner) Option {
	return func(options *Options) {
		options.signer = signer
	}
}

// WithAuthToken requires every signing request to carry token as a bearer
// credential.
func WithAuthToken(token string) Option {
	return func(options *Options) {
		options.authToken = token
	}
}

func WithEnablePProf(enable bool) Option {
	return func(options *Options) {
		options.enablePProf = enable
	}
}

type Handler struct {
	options *Options
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{options: &Options{}}
	for _, opt := range opts {
		opt(h.options)
	}
	if h.options.addr == "" {
		h.options.addr = "127.0.0.1:8336"
	}
	if h.options.signer == nil {
		return nil, errors.New("signer is nil")
	}
	if h.options.engine == nil {
		h.options.engine = gin.New()
	}
	return h, nil
}

func (h *Handler) Engine() *gin.Engine {
	return h.options.engine
}

func (h *Handler) Signer() KeySigner {
	return h.options.signer
}

// Run serves in the background until the process is interrupted.
func (h *Handler) Run() error {
	h.InitRoute()
	srv := &http.Server{
		Addr:    h.options.addr,
		Handler: h.options.engine,
	}
	signal.AddInterruptHandler(func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Srv.Errorf("srv.Shutdown: %v", err)
		}
	})
	go func() {
		log.Srv.Infof("signer listening on %s", h.options.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Srv.Errorf("srv.ListenAndServe: %v", err)
			os.Exit(1)
		}
	}()
	return nil
}
