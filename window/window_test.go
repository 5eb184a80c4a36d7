package window_test

import (
	"strconv"
	"time"

	. "code.cloudfoundry.org/influxdb-warner/window"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// 2023-12-31 is a Sunday, so at(d, ...) falls on day d.
func at(day int, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2023-12-31 "+clock)
	Expect(err).NotTo(HaveOccurred())
	return t.AddDate(0, 0, day-1)
}

var _ = Describe("Window", func() {
	Describe("Day", func() {
		It("counts from Sunday as 1", func() {
			Expect(Day(at(1, "10:00"))).To(Equal(1))
			Expect(Day(at(7, "10:00"))).To(Equal(7))
		})
	})

	Describe("IsValidDay", func() {
		DescribeTable("a single range",
			func(spec string, day int, expected bool) {
				Expect(IsValidDay([]string{spec}, at(day, "10:00"))).To(Equal(expected))
			},
			Entry("inside a bounded range", "2-6", 4, true),
			Entry("on the lower bound", "2-6", 2, true),
			Entry("on the upper bound", "2-6", 6, true),
			Entry("before the range", "2-6", 1, false),
			Entry("after the range", "2-6", 7, false),
			Entry("after an open lower bound", "3", 7, true),
			Entry("before an open lower bound", "3", 2, false),
			Entry("a single day range", "4-4", 4, true),
			Entry("a malformed range", "mon-fri", 4, false),
		)

		It("ORs a list of ranges", func() {
			specs := []string{"1-1", "7"}
			Expect(IsValidDay(specs, at(1, "10:00"))).To(BeTrue())
			Expect(IsValidDay(specs, at(7, "10:00"))).To(BeTrue())
			Expect(IsValidDay(specs, at(4, "10:00"))).To(BeFalse())
		})

		It("admits every day without ranges", func() {
			for day := 1; day <= 7; day++ {
				Expect(IsValidDay(nil, at(day, "10:00"))).To(BeTrue())
			}
		})

		It("follows the range law for every day and range", func() {
			for from := 1; from <= 7; from++ {
				for to := from; to <= 7; to++ {
					days, err := ParseDays([]string{strconv.Itoa(from) + "-" + strconv.Itoa(to)})
					Expect(err).NotTo(HaveOccurred())
					for d := 1; d <= 7; d++ {
						Expect(days.Contains(at(d, "10:00"))).To(Equal(from <= d && d <= to), "range %d-%d day %d", from, to, d)
					}
				}
			}
		})
	})

	Describe("IsValidTime", func() {
		DescribeTable("a single range",
			func(spec string, clock string, expected bool) {
				Expect(IsValidTime([]string{spec}, at(4, clock))).To(Equal(expected))
			},
			Entry("inside", "09:00-18:00", "12:30", true),
			Entry("on the lower bound", "09:00-18:00", "09:00", true),
			Entry("on the upper bound", "09:00-18:00", "18:00", true),
			Entry("before", "09:00-18:00", "08:59", false),
			Entry("after", "09:00-18:00", "18:01", false),
			Entry("open upper bound", "22:00", "23:59", true),
			Entry("before an open upper bound", "22:00", "21:59", false),
			Entry("malformed", "9am-6pm", "12:00", false),
		)

		It("ORs a list of ranges", func() {
			specs := []string{"09:00-12:00", "14:00-18:00"}
			Expect(IsValidTime(specs, at(4, "10:00"))).To(BeTrue())
			Expect(IsValidTime(specs, at(4, "15:00"))).To(BeTrue())
			Expect(IsValidTime(specs, at(4, "13:00"))).To(BeFalse())
		})

		It("admits every time without ranges", func() {
			Expect(IsValidTime([]string{}, at(4, "03:00"))).To(BeTrue())
		})
	})

	Describe("ParseDays", func() {
		It("rejects days outside 1-7", func() {
			_, err := ParseDays([]string{"0-3"})
			Expect(err).To(MatchError(ErrInvalidRange))
			_, err = ParseDays([]string{"1-8"})
			Expect(err).To(MatchError(ErrInvalidRange))
		})

		It("rejects inverted ranges", func() {
			_, err := ParseDays([]string{"5-2"})
			Expect(err).To(MatchError(ContainSubstring("lower bound is after upper bound")))
		})

		It("treats a trailing dash as an open range", func() {
			days, err := ParseDays([]string{"3-"})
			Expect(err).NotTo(HaveOccurred())
			Expect(days.Contains(at(7, "10:00"))).To(BeTrue())
		})
	})

	Describe("ParseTimes", func() {
		It("rejects values that are not HH:mm", func() {
			_, err := ParseTimes([]string{"9:00-18:00"})
			Expect(err).To(MatchError(ErrInvalidRange))
			_, err = ParseTimes([]string{"09:00-25:00"})
			Expect(err).To(MatchError(ErrInvalidRange))
		})

		It("rejects inverted ranges", func() {
			_, err := ParseTimes([]string{"22:00-06:00"})
			Expect(err).To(MatchError(ContainSubstring("lower bound is after upper bound")))
		})
	})
})
