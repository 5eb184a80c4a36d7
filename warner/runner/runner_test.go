package runner_test

import (
	"context"
	"errors"
	"time"

	"code.cloudfoundry.org/influxdb-warner/expression"
	"code.cloudfoundry.org/influxdb-warner/fakes"
	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/store"
	"code.cloudfoundry.org/influxdb-warner/warner/config"
	"code.cloudfoundry.org/influxdb-warner/warner/query"
	"code.cloudfoundry.org/influxdb-warner/warner/runner"
	"code.cloudfoundry.org/influxdb-warner/warner/scheduler"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/cenkalti/backoff/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	circuit "github.com/rubyist/circuitbreaker"
)

const loginQL = `select count("account") AS "account_count" from "login" where "result" = 'success'`

var _ = Describe("Runner", func() {
	var (
		ruleRunner *runner.Runner
		fclock     *fakeclock.FakeClock
		logger     *lagertest.TestLogger
		emitter    *fakes.FakeEmitter
		connector  *fakes.FakeConnector
		handle     *fakes.FakeQueryHandle
		limiter    *fakes.FakeLimiter
		connectErr error
		getBreaker func(string) *circuit.Breaker
		descriptor *models.Rule
		rule       *runner.Rule
		job        *runner.Job
		state      runner.State
	)

	BeforeEach(func() {
		// a Tuesday, day 3
		fclock = fakeclock.NewFakeClock(time.Date(2024, time.January, 2, 10, 30, 0, 0, time.UTC))
		logger = lagertest.NewTestLogger("runner-test")
		emitter = &fakes.FakeEmitter{}
		handle = &fakes.FakeQueryHandle{}
		handle.StringReturns(loginQL)
		handle.ExecuteReturns(map[string][]models.Row{
			"login": {{"account_count": 2.0}},
		}, nil)
		connector = &fakes.FakeConnector{}
		connector.QueryReturns(handle)
		limiter = &fakes.FakeLimiter{}
		connectErr = nil
		getBreaker = nil

		descriptor = &models.Rule{
			Func:  models.StringList{"count(account)"},
			Where: models.StringList{"result = success"},
			Check: models.StringList{"matched = account_count < 5"},
			Text:  models.StringList{"low success logins"},
		}
	})

	JustBeforeEach(func() {
		connect := func(database string) (store.Connector, error) {
			Expect(database).To(Equal("warner"))
			if connectErr != nil {
				return nil, connectErr
			}
			return connector, nil
		}
		ruleRunner = runner.NewRunner(logger, fclock, emitter, connect, limiter, getBreaker, nil)
		rule = runner.Compile("warner", "login", 0, descriptor)
		job = &runner.Job{TickID: "tick-1", Rule: rule, Timeout: 5 * time.Second}
		state = ruleRunner.Run(context.Background(), job)
	})

	Context("when a row matches", func() {
		It("builds the query from the rule", func() {
			Expect(connector.QueryArgsForCall(0)).To(Equal("login"))

			name, args := handle.AddFunctionArgsForCall(0)
			Expect(name).To(Equal("count"))
			Expect(args).To(Equal([]string{"account"}))

			field, value, operator := handle.WhereArgsForCall(0)
			Expect(field).To(Equal("result"))
			Expect(value).To(Equal("success"))
			Expect(operator).To(Equal("="))

			Expect(handle.SetFormatArgsForCall(0)).To(Equal(store.FormatJSON))
			Expect(handle.SetTimeRangeCallCount()).To(Equal(0))
		})

		It("emits exactly one warning", func() {
			Expect(state).To(Equal(runner.Done))
			Expect(emitter.WarnCallCount()).To(Equal(1))
			Expect(emitter.ErrorCallCount()).To(Equal(0))

			event := emitter.WarnArgsForCall(0)
			Expect(event.TickID).To(Equal("tick-1"))
			Expect(event.Database).To(Equal("warner"))
			Expect(event.Measurement).To(Equal("login"))
			Expect(event.Text).To(Equal("low success logins"))
			Expect(event.Query).To(Equal(loginQL))
			Expect(event.Row).To(Equal(models.Row{"account_count": 2.0}))
			Expect(event.Value).To(BeNil())
			Expect(event.Timestamp).To(Equal(fclock.Now()))
		})

		It("waits on the limiter of the database", func() {
			Expect(limiter.WaitCallCount()).To(Equal(1))
			_, key := limiter.WaitArgsForCall(0)
			Expect(key).To(Equal("warner"))
		})

		It("bounds the query with the timeout", func() {
			ctx := handle.ExecuteArgsForCall(0)
			deadline, ok := ctx.Deadline()
			Expect(ok).To(BeTrue())
			Expect(deadline).To(BeTemporally("~", time.Now().Add(5*time.Second), time.Second))
		})
	})

	Context("when no row matches", func() {
		BeforeEach(func() {
			handle.ExecuteReturns(map[string][]models.Row{
				"login": {{"account_count": 20.0}},
				"other": {{"account_count": 1.0}},
			}, nil)
		})

		It("finishes without events", func() {
			Expect(state).To(Equal(runner.Done))
			Expect(emitter.WarnCallCount()).To(Equal(0))
			Expect(emitter.ErrorCallCount()).To(Equal(0))
		})
	})

	Context("when the rule has several checks and texts", func() {
		BeforeEach(func() {
			descriptor.Check = models.StringList{"account_count > 100", "account_count < 5"}
			descriptor.Text = models.StringList{"too many logins", "too few logins"}
		})

		It("uses the text of the matching branch", func() {
			Expect(emitter.WarnCallCount()).To(Equal(1))
			Expect(emitter.WarnArgsForCall(0).Text).To(Equal("too few logins"))
		})
	})

	Context("when the rule names a field", func() {
		BeforeEach(func() {
			descriptor.Field = "account_count"
		})

		It("carries only that value", func() {
			event := emitter.WarnArgsForCall(0)
			Expect(event.Value).To(Equal(2.0))
			Expect(event.Row).To(BeNil())
		})
	})

	Context("when the rule has a time range", func() {
		BeforeEach(func() {
			descriptor.Start = "-5m"
		})

		It("passes it on", func() {
			start, end := handle.SetTimeRangeArgsForCall(0)
			Expect(start).To(Equal("-5m"))
			Expect(end).To(BeEmpty())
		})
	})

	Context("when the rule is passed", func() {
		BeforeEach(func() {
			descriptor.Pass = true
		})

		It("skips without querying", func() {
			Expect(state).To(Equal(runner.Skipped))
			Expect(connector.QueryCallCount()).To(Equal(0))
			Expect(emitter.Invocations()).To(BeEmpty())
		})
	})

	Context("when the day window rejects today", func() {
		BeforeEach(func() {
			descriptor.Day = models.StringList{"4-7"}
		})

		It("skips", func() {
			Expect(state).To(Equal(runner.Skipped))
			Expect(handle.ExecuteCallCount()).To(Equal(0))
		})
	})

	Context("when the time window admits now", func() {
		BeforeEach(func() {
			descriptor.Day = models.StringList{"1", "3"}
			descriptor.Time = models.StringList{"09:00-11:00"}
		})

		It("runs", func() {
			Expect(state).To(Equal(runner.Done))
		})
	})

	Context("when the time window rejects now", func() {
		BeforeEach(func() {
			descriptor.Time = models.StringList{"18:00"}
		})

		It("skips", func() {
			Expect(state).To(Equal(runner.Skipped))
		})
	})

	Context("when the rule does not compile", func() {
		BeforeEach(func() {
			descriptor.Where = models.StringList{"result success"}
		})

		It("reports a config error without querying", func() {
			Expect(state).To(Equal(runner.Failed))
			Expect(connector.QueryCallCount()).To(Equal(0))
			Expect(emitter.ErrorCallCount()).To(Equal(1))

			ruleErr := emitter.ErrorArgsForCall(0)
			Expect(ruleErr.Kind).To(Equal(models.ConfigErrorKind))
			Expect(ruleErr.Measurement).To(Equal("login"))
			Expect(errors.Is(ruleErr, query.ErrInvalidWhere)).To(BeTrue())
		})

		It("reports it again on every run", func() {
			Expect(ruleRunner.Run(context.Background(), job)).To(Equal(runner.Failed))
			Expect(emitter.ErrorCallCount()).To(Equal(2))
		})
	})

	Context("when connecting fails", func() {
		BeforeEach(func() {
			connectErr = errors.New("bad address")
		})

		It("reports a query error", func() {
			Expect(state).To(Equal(runner.Failed))
			Expect(emitter.ErrorArgsForCall(0).Kind).To(Equal(models.QueryErrorKind))
		})
	})

	Context("when the store fails", func() {
		BeforeEach(func() {
			handle.ExecuteReturns(nil, errors.New("authorization failed"))
		})

		It("reports a query error carrying the query text", func() {
			Expect(state).To(Equal(runner.Failed))
			Expect(emitter.WarnCallCount()).To(Equal(0))

			ruleErr := emitter.ErrorArgsForCall(0)
			Expect(ruleErr.Kind).To(Equal(models.QueryErrorKind))
			Expect(ruleErr.Query).To(Equal(loginQL))
			Expect(ruleErr).To(MatchError(ContainSubstring("authorization failed")))
			Expect(logger.LogMessages()).To(ContainElement("runner-test.Runner.run.failed-to-query"))
		})
	})

	Context("when the limiter gives up", func() {
		BeforeEach(func() {
			limiter.WaitReturns(context.DeadlineExceeded)
		})

		It("fails without querying", func() {
			Expect(state).To(Equal(runner.Failed))
			Expect(handle.ExecuteCallCount()).To(Equal(0))
			Expect(errors.Is(emitter.ErrorArgsForCall(0), context.DeadlineExceeded)).To(BeTrue())
		})
	})

	Context("when a check fails at run time", func() {
		BeforeEach(func() {
			descriptor.Check = models.StringList{"matched = missing > 1"}
		})

		It("reports an evaluation error", func() {
			Expect(state).To(Equal(runner.Failed))
			ruleErr := emitter.ErrorArgsForCall(0)
			Expect(ruleErr.Kind).To(Equal(models.EvaluationErrorKind))
			Expect(errors.Is(ruleErr, expression.ErrUndefinedIdentifier)).To(BeTrue())
		})
	})

	Context("when the store panics", func() {
		BeforeEach(func() {
			handle.ExecuteStub = func(context.Context) (map[string][]models.Row, error) {
				panic("boom")
			}
		})

		It("recovers and reports", func() {
			Expect(state).To(Equal(runner.Failed))
			Expect(emitter.ErrorArgsForCall(0)).To(MatchError(ContainSubstring("boom")))
		})
	})

	Context("with a circuit breaker", func() {
		var breaker *circuit.Breaker

		BeforeEach(func() {
			bf := backoff.NewExponentialBackOff()
			bf.InitialInterval = time.Hour
			bf.RandomizationFactor = 0
			bf.MaxElapsedTime = 0
			breaker = circuit.NewBreakerWithOptions(&circuit.Options{
				BackOff:    bf,
				ShouldTrip: circuit.ConsecutiveTripFunc(1),
			})
			getBreaker = func(database string) *circuit.Breaker {
				Expect(database).To(Equal("warner"))
				return breaker
			}
			handle.ExecuteReturns(nil, errors.New("connection refused"))
		})

		It("stops querying once the breaker trips", func() {
			Expect(state).To(Equal(runner.Failed))
			Expect(breaker.Tripped()).To(BeTrue())

			Expect(ruleRunner.Run(context.Background(), job)).To(Equal(runner.Failed))
			Expect(handle.ExecuteCallCount()).To(Equal(1))
			Expect(errors.Is(emitter.ErrorArgsForCall(1), circuit.ErrBreakerOpen)).To(BeTrue())
		})
	})

	Context("when the store rejects the statements of other rules on the database", func() {
		var breakers *scheduler.Breakers

		BeforeEach(func() {
			breakers = scheduler.NewBreakers(config.DefaultEngineConfig().CircuitBreaker)
			getBreaker = breakers.GetBreaker
			undefined := &store.StatementError{Err: errors.New("undefined function foo()")}
			for i := 0; i < 5; i++ {
				handle.ExecuteReturnsOnCall(i, nil, undefined)
			}
		})

		It("keeps running the healthy rule", func() {
			Expect(state).To(Equal(runner.Failed))
			for i := 1; i < 5; i++ {
				Expect(ruleRunner.Run(context.Background(), job)).To(Equal(runner.Failed))
			}
			Expect(breakers.GetBreaker("warner").Tripped()).To(BeFalse())

			for i := 0; i < 5; i++ {
				ruleErr := emitter.ErrorArgsForCall(i)
				Expect(ruleErr.Kind).To(Equal(models.QueryErrorKind))
				Expect(ruleErr).To(MatchError(ContainSubstring("undefined function foo()")))
			}

			Expect(ruleRunner.Run(context.Background(), job)).To(Equal(runner.Done))
			Expect(handle.ExecuteCallCount()).To(Equal(6))
			Expect(emitter.WarnCallCount()).To(Equal(1))
		})
	})

	Context("when transport failures trip the shared breaker", func() {
		var breakers *scheduler.Breakers

		BeforeEach(func() {
			breakers = scheduler.NewBreakers(config.DefaultEngineConfig().CircuitBreaker)
			getBreaker = breakers.GetBreaker
			handle.ExecuteReturns(nil, errors.New("connection refused"))
		})

		It("opens after the configured number of failures", func() {
			for i := 1; i < int(config.DefaultBreakerConsecutiveFailureCount); i++ {
				ruleRunner.Run(context.Background(), job)
			}
			Expect(breakers.GetBreaker("warner").Tripped()).To(BeTrue())
		})
	})
})
