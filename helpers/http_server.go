package helpers

import (
	"fmt"
	"net/http"
	"os"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/http_server"
)

type ServerConfig struct {
	Port int `yaml:"port" json:"port"`
}

// NewHTTPServer binds to localhost only when WARNER_TEST_RUN is set.
func NewHTTPServer(logger lager.Logger, conf ServerConfig, handler http.Handler) ifrit.Runner {
	addr := fmt.Sprintf("0.0.0.0:%d", conf.Port)
	if os.Getenv("WARNER_TEST_RUN") == "true" {
		addr = fmt.Sprintf("localhost:%d", conf.Port)
	}

	logger.Info("new-http-server", lager.Data{"addr": addr})
	return http_server.New(addr, handler)
}
