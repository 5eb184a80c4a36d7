package fakes

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o ./fake_connector.go ../store Connector
//counterfeiter:generate -o ./fake_query_handle.go ../store QueryHandle
//counterfeiter:generate -o ./fake_limiter.go ../ratelimiter Limiter
//counterfeiter:generate -o ./fake_emitter.go ../warner/runner Emitter
