package sreg_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/PaulFidika/sregkit/sreg"
)

type BirthDateSuite struct {
	suite.Suite
	hook *logtest.Hook
}

func TestBirthDateSuite(t *testing.T) {
	suite.Run(t, new(BirthDateSuite))
}

func (s *BirthDateSuite) SetupTest() {
	l, hook := logtest.NewNullLogger()
	s.hook = hook
	sreg.SetLogger(l)
}

func (s *BirthDateSuite) TearDownTest() {
	sreg.SetLogger(logrus.StandardLogger())
}

func (s *BirthDateSuite) TestRawCalendarDate() {
	for _, raw := range []string{"1990-05-17", "2024-02-29", "0001-01-01", "9999-12-31"} {
		s.Run(raw, func() {
			r := sreg.NewResponse(sreg.NamespaceV10)
			s.Require().NoError(r.SetBirthDateRaw(&raw))

			want, err := civil.ParseDate(raw)
			s.Require().NoError(err)
			got, ok := r.BirthDate()
			s.True(ok)
			s.Equal(want, got)
			s.Equal(raw, *r.BirthDateRaw())
		})
	}
	s.Empty(s.hook.AllEntries())
}

func (s *BirthDateSuite) TestStructuredDateFormatsRaw() {
	cases := map[string]civil.Date{
		"1990-05-17": {Year: 1990, Month: time.May, Day: 17},
		"0005-03-07": {Year: 5, Month: time.March, Day: 7},
		"2000-12-01": {Year: 2000, Month: time.December, Day: 1},
	}
	for want, d := range cases {
		r := sreg.NewResponse(sreg.NamespaceV10)
		s.Require().NoError(r.SetBirthDate(d))
		s.Equal(want, *r.BirthDateRaw())
		got, ok := r.BirthDate()
		s.True(ok)
		s.Equal(d, got)
	}
}

func (s *BirthDateSuite) TestStructuredDateOutOfRange() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	s.Require().NoError(r.SetBirthDate(civil.Date{Year: 1980, Month: time.January, Day: 2}))

	err := r.SetBirthDate(civil.Date{Year: 10000, Month: time.January, Day: 1})
	s.ErrorIs(err, sreg.ErrInvalidDate)
	err = r.SetBirthDate(civil.Date{Year: 2001, Month: time.February, Day: 29})
	s.ErrorIs(err, sreg.ErrInvalidDate)
	s.Equal("1980-01-02", *r.BirthDateRaw())
}

func (s *BirthDateSuite) TestNilClearsBoth() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	s.Require().NoError(r.SetBirthDate(civil.Date{Year: 1970, Month: time.July, Day: 4}))

	s.Require().NoError(r.SetBirthDateRaw(nil))
	s.Nil(r.BirthDateRaw())
	_, ok := r.BirthDate()
	s.False(ok)
}

func (s *BirthDateSuite) TestSentinelDateDegrades() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	raw := "2000-00-00"
	s.Require().NoError(r.SetBirthDateRaw(&raw))

	_, ok := r.BirthDate()
	s.False(ok)
	s.Equal("2000-00-00", *r.BirthDateRaw())

	entry := s.hook.LastEntry()
	s.Require().NotNil(entry)
	s.Equal(logrus.WarnLevel, entry.Level)
	s.Equal("2000-00-00", entry.Data[sreg.FieldBirthDate])
}

func (s *BirthDateSuite) TestYearZeroDegrades() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	raw := "0000-05-17"
	s.Require().NoError(r.SetBirthDateRaw(&raw))
	_, ok := r.BirthDate()
	s.False(ok)
	s.Equal(raw, *r.BirthDateRaw())
	s.ErrorIs(r.SetBirthDate(civil.Date{Year: 0, Month: time.May, Day: 17}), sreg.ErrInvalidDate)
}

func (s *BirthDateSuite) TestNonLeapDayDegrades() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	raw := "2023-02-29"
	s.Require().NoError(r.SetBirthDateRaw(&raw))
	_, ok := r.BirthDate()
	s.False(ok)
	s.Equal(raw, *r.BirthDateRaw())
	s.Len(s.hook.AllEntries(), 1)
}

func (s *BirthDateSuite) TestMalformedRejected() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	prior := "1985-11-30"
	s.Require().NoError(r.SetBirthDateRaw(&prior))

	for _, raw := range []string{"abcd-ef-gh", "85-11-30", "1985-11-30T00:00:00Z", "1985/11/30", " 1985-11-30", ""} {
		bad := raw
		err := r.SetBirthDateRaw(&bad)
		s.ErrorIs(err, sreg.ErrInvalidFormat, raw)
	}
	s.Equal(prior, *r.BirthDateRaw())
	got, ok := r.BirthDate()
	s.True(ok)
	s.Equal(civil.Date{Year: 1985, Month: time.November, Day: 30}, got)
}

func (s *BirthDateSuite) TestRawCopyIsDetached() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	raw := "2000-00-00"
	s.Require().NoError(r.SetBirthDateRaw(&raw))
	raw = "changed"
	*r.BirthDateRaw() = "also changed"
	s.Equal("2000-00-00", *r.BirthDateRaw())
}

func (s *BirthDateSuite) TestClearBirthDate() {
	r := sreg.NewResponse(sreg.NamespaceV10)
	raw := "1999-00-00"
	s.Require().NoError(r.SetBirthDateRaw(&raw))
	r.ClearBirthDate()
	s.Nil(r.BirthDateRaw())
}
