package influxdb_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/store"
	. "code.cloudfoundry.org/influxdb-warner/store/influxdb"

	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var influxHeader = http.Header{"X-Influxdb-Version": []string{"1.8.10"}}

var _ = Describe("Connector", func() {
	var (
		server    *ghttp.Server
		db        *models.Database
		connector *Connector
		timeout   time.Duration
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		host, port, found := strings.Cut(strings.TrimPrefix(server.URL(), "http://"), ":")
		Expect(found).To(BeTrue())
		portNumber, err := strconv.Atoi(port)
		Expect(err).NotTo(HaveOccurred())

		db = &models.Database{Name: "warner", Host: host, Port: portNumber}
		timeout = 2 * time.Second
	})

	JustBeforeEach(func() {
		var err error
		connector, err = NewConnector(db, timeout, lagertest.NewTestLogger("connector"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = connector.Close()
		server.Close()
	})

	Describe("Execute", func() {
		var (
			query  store.QueryHandle
			rows   map[string][]models.Row
			err    error
			ctx    context.Context
			cancel context.CancelFunc
		)

		BeforeEach(func() {
			ctx, cancel = context.WithTimeout(context.Background(), time.Second)
		})

		JustBeforeEach(func() {
			query = connector.Query("login")
			query.AddFunction("count", "account")
			query.Where("result", "success", "=")
			query.AddGroup("type")
			rows, err = query.Execute(ctx)
		})

		AfterEach(func() {
			cancel()
		})

		Context("when the store answers with series", func() {
			BeforeEach(func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyFormKV("db", "warner"),
					ghttp.VerifyFormKV("q", `select count("account") AS "account_count" from "login" where "result" = 'success' group by "type"`),
					ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]interface{}{
						"results": []interface{}{
							map[string]interface{}{
								"statement_id": 0,
								"series": []interface{}{
									map[string]interface{}{
										"name":    "login",
										"tags":    map[string]string{"type": "vip"},
										"columns": []string{"time", "account_count"},
										"values":  [][]interface{}{{"1970-01-01T00:00:00Z", 2}},
									},
									map[string]interface{}{
										"name":    "login",
										"tags":    map[string]string{"type": "normal"},
										"columns": []string{"time", "account_count"},
										"values":  [][]interface{}{{"1970-01-01T00:00:00Z", 7}},
									},
								},
							},
						},
					}, influxHeader),
				))
			})

			It("returns one row per value with tags and numbers", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(rows).To(HaveKey("login"))
				Expect(rows["login"]).To(Equal([]models.Row{
					{"time": "1970-01-01T00:00:00Z", "account_count": 2.0, "type": "vip"},
					{"time": "1970-01-01T00:00:00Z", "account_count": 7.0, "type": "normal"},
				}))
			})
		})

		Context("when the store reports an error", func() {
			BeforeEach(func() {
				server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]interface{}{
					"results": []interface{}{
						map[string]interface{}{"statement_id": 0, "error": "database not found: warner"},
					},
				}, influxHeader))
			})

			It("returns it as a statement error", func() {
				Expect(err).To(MatchError(ContainSubstring("database not found")))
				var statementErr *store.StatementError
				Expect(errors.As(err, &statementErr)).To(BeTrue())
				Expect(rows).To(BeNil())
			})
		})

		Context("when the store rejects the credentials", func() {
			BeforeEach(func() {
				db.User = "admin"
				db.Pass = "secret"
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyBasicAuth("admin", "secret"),
					ghttp.RespondWithJSONEncoded(http.StatusUnauthorized, map[string]interface{}{"error": "authorization failed"}, influxHeader),
				))
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(ContainSubstring("authorization failed")))
				var statementErr *store.StatementError
				Expect(errors.As(err, &statementErr)).To(BeFalse())
			})
		})

		Context("when the store does not answer in time", func() {
			BeforeEach(func() {
				ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
				server.AppendHandlers(func(w http.ResponseWriter, r *http.Request) {
					time.Sleep(300 * time.Millisecond)
				})
			})

			It("gives up when the context ends", func() {
				Expect(err).To(MatchError(context.DeadlineExceeded))
			})
		})
	})

	Describe("Execute with an unsupported format", func() {
		It("fails without sending the query", func() {
			query := connector.Query("login")
			query.SetFormat(store.FormatCSV)
			_, err := query.Execute(context.Background())
			Expect(err).To(MatchError(store.ErrUnsupportedFormat))
			Expect(server.ReceivedRequests()).To(BeEmpty())
		})
	})

	Describe("Ping", func() {
		Context("when the store is up", func() {
			BeforeEach(func() {
				server.AppendHandlers(ghttp.CombineHandlers(
					ghttp.VerifyRequest(http.MethodGet, "/ping"),
					ghttp.RespondWith(http.StatusNoContent, nil, influxHeader),
				))
			})

			It("succeeds", func() {
				Expect(connector.Ping(context.Background())).To(Succeed())
			})
		})

		Context("when the store is down", func() {
			BeforeEach(func() {
				server.Close()
			})

			It("fails", func() {
				Expect(connector.Ping(context.Background())).NotTo(Succeed())
			})
		})
	})
})
