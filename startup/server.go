package startup

import (
	"code.cloudfoundry.org/lager/v3"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/grouper"
)

type ServerBuilder struct {
	Name       string
	CreateFunc func() (ifrit.Runner, error)
}

func CreateServers(builders []ServerBuilder, logger lager.Logger) grouper.Members {
	members := make(grouper.Members, 0, len(builders))
	for _, builder := range builders {
		server, err := builder.CreateFunc()
		ExitOnError(err, logger, "failed-to-create-"+builder.Name)
		members = append(members, grouper.Member{Name: builder.Name, Runner: server})
	}
	return members
}

func Server(name string, createFunc func() (ifrit.Runner, error)) ServerBuilder {
	return ServerBuilder{
		Name:       name,
		CreateFunc: createFunc,
	}
}

// StartService runs the servers in order until an interrupt or a failure.
func StartService(logger lager.Logger, servers ...ServerBuilder) {
	members := CreateServers(servers, logger)
	if err := StartServices(logger, members); err != nil {
		ExitOnError(err, logger, "service-startup-failed")
	}
}
