package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/gin-gonic/gin"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/inscription-c/pins/internal/prompt"
	"github.com/inscription-c/pins/internal/signal"
	"github.com/inscription-c/pins/internal/util"
	"github.com/inscription-c/pins/signer"
	"github.com/inscription-c/pins/signer/server/handle"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	srvOptions = &SrvOptions{}

	mainNetListen = "127.0.0.1:8336"
	testNetListen = "127.0.0.1:18336"
)

// SrvOptions configures the signer server. Fields can be set by flags, by a
// yaml config file or by SrvOption values, in that order of precedence
// from lowest to highest.
type SrvOptions struct {
	configFile  string
	Testnet     bool   `yaml:"testnet"`
	Listen      string `yaml:"listen"`
	WIF         string `yaml:"wif"`
	AuthToken   string `yaml:"auth_token"`
	EnablePProf bool   `yaml:"pprof"`
	LogLevel    string `yaml:"log_level"`
}

type SrvOption func(*SrvOptions)

func WithTestNet(testnet bool) SrvOption {
	return func(options *SrvOptions) {
		options.Testnet = testnet
	}
}

func WithListen(listen string) SrvOption {
	return func(options *SrvOptions) {
		options.Listen = listen
	}
}

func WithWIF(wif string) SrvOption {
	return func(options *SrvOptions) {
		options.WIF = wif
	}
}

func WithAuthToken(token string) SrvOption {
	return func(options *SrvOptions) {
		options.AuthToken = token
	}
}

func WithEnablePProf(enablePProf bool) SrvOption {
	return func(options *SrvOptions) {
		options.EnablePProf = enablePProf
	}
}

var Cmd = &cobra.Command{
	Use:   "signer",
	Short: "psbt signing server holding the inscription key",
	Run: func(cmd *cobra.Command, args []string) {
		if err := SignerSrv(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		<-signal.InterruptHandlersDone
	},
}

func init() {
	Cmd.Flags().StringVarP(&srvOptions.configFile, "config", "c", "", "config file path")
	Cmd.Flags().BoolVarP(&srvOptions.Testnet, "testnet", "t", false, "bellscoin testnet")
	Cmd.Flags().StringVarP(&srvOptions.Listen, "listen", "l", "", "listen address. Default `mainnet 127.0.0.1:8336, testnet 127.0.0.1:18336`")
	Cmd.Flags().StringVarP(&srvOptions.WIF, "wif", "", "", "signing key in wallet import format, prompted for when empty")
	Cmd.Flags().StringVarP(&srvOptions.AuthToken, "auth_token", "", "", "bearer token required by /sign and /pubkey")
	Cmd.Flags().BoolVarP(&srvOptions.EnablePProf, "pprof", "", false, "enable pprof")
	Cmd.Flags().StringVarP(&srvOptions.LogLevel, "log_level", "", "info", "log level")
}

// loadConfig applies the config file over the flag values.
func loadConfig(options *SrvOptions) error {
	if options.configFile == "" {
		return nil
	}
	configFile, err := os.Open(options.configFile)
	if err != nil {
		return errors.Wrap(err, "open config")
	}
	defer configFile.Close()
	if err := yaml.NewDecoder(configFile).Decode(options); err != nil {
		return errors.Wrap(err, "decode config")
	}
	return nil
}

// defaultListen binds loopback only. Remote clients need an explicit listen
// address.
func defaultListen(testnet bool) string {
	if testnet {
		return testNetListen
	}
	return mainNetListen
}

// NewSigner builds the key signer for options, prompting for the key when
// none was configured.
func NewSigner(options *SrvOptions) (*signer.KeySigner, error) {
	wif := options.WIF
	if wif == "" {
		var err error
		if wif, err = prompt.Secret("Signing key (WIF): "); err != nil {
			return nil, err
		}
	}
	return signer.NewKeySignerFromWIF(wif, util.ActiveNet.Params)
}

func SignerSrv(opts ...SrvOption) error {
	if err := loadConfig(srvOptions); err != nil {
		return err
	}
	for _, v := range opts {
		v(srvOptions)
	}

	util.UseTestNet(srvOptions.Testnet)
	if srvOptions.Listen == "" {
		srvOptions.Listen = defaultListen(srvOptions.Testnet)
	}

	logDir := filepath.Join(constants.AppName, "signer", "logs", "signer.log")
	log.InitLogRotator(btcutil.AppDataDir(logDir, false))
	log.SetLogLevels(srvOptions.LogLevel)

	keySigner, err := NewSigner(srvOptions)
	if err != nil {
		return err
	}
	log.Srv.Infof("signing for %s on %s", util.ActiveNet.Name, srvOptions.Listen)
	if srvOptions.AuthToken == "" {
		log.Srv.Warnf("no auth_token set, any client reaching %s can request signatures", srvOptions.Listen)
	}

	gin.SetMode(gin.ReleaseMode)
	h, err := handle.New(
		handle.WithAddr(srvOptions.Listen),
		handle.WithSigner(keySigner),
		handle.WithAuthToken(srvOptions.AuthToken),
		handle.WithEnablePProf(srvOptions.EnablePProf),
	)
	if err != nil {
		return err
	}
	return h.Run()
}
