package inscription

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btclog"
	"github.com/go-playground/validator/v10"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/inscription-c/pins/internal/util"
)

var validate = validator.New()

// Inscriber builds inscription chains. The protocol fee paid by the terminal
// transaction and the network used to decode addresses are fixed at
// construction time.
type Inscriber struct {
	net                *chaincfg.Params
	protocolFee        int64
	protocolFeeAddress string
	log                btclog.Logger
}

// Option is a function type that modifies an Inscriber.
type Option func(*Inscriber)

// WithNet sets the network used to decode destination, change and fee addresses.
func WithNet(params *chaincfg.Params) Option {
	return func(i *Inscriber) {
		i.net = params
	}
}

// WithProtocolFee sets the protocol fee output of the terminal transaction.
// A zero amount leaves the output out.
func WithProtocolFee(address string, amount int64) Option {
	return func(i *Inscriber) {
		i.protocolFeeAddress = address
		i.protocolFee = amount
	}
}

// WithLogger sets the logger of the Inscriber.
func WithLogger(logger btclog.Logger) Option {
	return func(i *Inscriber) {
		i.log = logger
	}
}

// NewInscriber returns an Inscriber for util.ActiveNet charging the default
// protocol fee, unless overridden by opts.
func NewInscriber(opts ...Option) *Inscriber {
	i := &Inscriber{
		net:                util.ActiveNet.Params,
		protocolFee:        constants.DefaultProtocolFee,
		protocolFeeAddress: constants.DefaultProtocolFeeAddress,
		log:                log.Log,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ProtocolFee returns the address and amount of the protocol fee output.
func (i *Inscriber) ProtocolFee() (string, int64) {
	return i.protocolFeeAddress, i.protocolFee
}
