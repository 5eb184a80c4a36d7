package influxdb_test

import (
	"time"

	"code.cloudfoundry.org/influxdb-warner/models"
	"code.cloudfoundry.org/influxdb-warner/store"
	. "code.cloudfoundry.org/influxdb-warner/store/influxdb"

	"code.cloudfoundry.org/lager/v3/lagertest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Query", func() {
	var (
		connector *Connector
		query     store.QueryHandle
	)

	BeforeEach(func() {
		var err error
		connector, err = NewConnector(&models.Database{Name: "warner", Host: "127.0.0.1"}, time.Second, lagertest.NewTestLogger("query"))
		Expect(err).NotTo(HaveOccurred())
		query = connector.Query("login")
	})

	AfterEach(func() {
		Expect(connector.Close()).To(Succeed())
	})

	It("selects everything by default", func() {
		Expect(query.String()).To(Equal(`select * from "login"`))
	})

	It("renders aggregates with an alias", func() {
		query.AddFunction("count", "account")
		query.AddFunction("percentile", "use", "95")
		query.AddFunction("count", "*")
		Expect(query.String()).To(Equal(`select count("account") AS "account_count",percentile("use",95) AS "use_percentile",count(*) AS "count" from "login"`))
	})

	It("renders string, numeric and regex conditions", func() {
		query.Where("result", "success", "=")
		query.Where("value", 10.0, ">")
		query.Where("os", "/^i/", "=~")
		query.Where("type", "it's", "")
		Expect(query.String()).To(Equal(`select * from "login" where "result" = 'success' and "value" > 10 and "os" =~ /^i/ and "type" = 'it\'s'`))
	})

	It("renders relative and absolute time ranges", func() {
		query.SetTimeRange("-5m", "2024-01-01T00:00:00Z")
		Expect(query.String()).To(Equal(`select * from "login" where time >= now() - 5m and time <= '2024-01-01T00:00:00Z'`))
	})

	It("keeps now() expressions as they are", func() {
		query.SetTimeRange("now() - 1h", "")
		Expect(query.String()).To(Equal(`select * from "login" where time >= now() - 1h`))
	})

	It("renders group by tags and time buckets in order", func() {
		query.AddGroup("type")
		query.AddGroup("time(5m)")
		Expect(query.String()).To(Equal(`select * from "login" group by "type",time(5m)`))
	})

	It("puts user conditions before the time range", func() {
		query.AddFunction("count", "account")
		query.Where("result", "success", "=")
		query.SetTimeRange("-1h", "")
		query.AddGroup("os")
		Expect(query.String()).To(Equal(`select count("account") AS "account_count" from "login" where "result" = 'success' and time >= now() - 1h group by "os"`))
	})
})
