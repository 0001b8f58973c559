package weather

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/enescakir/emoji"
	"github.com/thoas/go-funk"
)

// Observation is one point of the forecast time series.
type Observation struct {
	Time        time.Time // instant, UTC
	Temperature float64
	Condition   string // e.g. "light rain"
	Icon        string
	Humidity    int // %
	WindSpeed   float64
}

// Bucket is a named part of the day.
type Bucket int

const (
	Morning Bucket = iota
	Noon
	Afternoon
	Night
)

// Buckets in display order.
var Buckets = []Bucket{Morning, Noon, Afternoon, Night}

type bucketDef struct {
	name  string
	hours []int
	emoji emoji.Emoji
}

// Hours are local hours of the day. A 24-hour clock never yields 24, so
// midnight is only ever 0.
var bucketDefs = map[Bucket]bucketDef{
	Morning:   {name: "morning", hours: []int{6, 7, 8, 9}, emoji: emoji.Sunrise},
	Noon:      {name: "noon", hours: []int{12}, emoji: emoji.Sun},
	Afternoon: {name: "afternoon", hours: []int{15, 16, 17, 18}, emoji: emoji.CityscapeAtDusk},
	Night:     {name: "night", hours: []int{21, 22, 23, 0}, emoji: emoji.CrescentMoon},
}

func (b Bucket) String() string {
	return bucketDefs[b].name
}

// Title is the capitalized name, e.g. "Morning".
func (b Bucket) Title() string {
	n := bucketDefs[b].name
	if n == "" {
		return ""
	}
	return strings.ToUpper(n[:1]) + n[1:]
}

func (b Bucket) Emoji() string {
	return bucketDefs[b].emoji.String()
}

func (b Bucket) Hours() []int {
	return append([]int(nil), bucketDefs[b].hours...)
}

// BucketOf returns the bucket admitting hour, if any.
func BucketOf(hour int) (Bucket, bool) {
	for _, b := range Buckets {
		if funk.ContainsInt(bucketDefs[b].hours, hour) {
			return b, true
		}
	}
	return 0, false
}

// Period is the summary of one bucket. When Available is false the bucket had
// no observations and every other field except Bucket is zero.
type Period struct {
	Bucket    Bucket
	Available bool
	Count     int

	Temperature    float64 // mean of the bucket, one decimal place
	Representative Observation

	TemperatureEmoji string
	ConditionEmoji   string
	HumidityEmoji    string
	WindEmoji        string
}

// localHour is the hour of t on a clock offset from UTC by offset
func localHour(t time.Time, offset time.Duration) int {
	return t.In(time.UTC).Add(offset).Hour()
}

// Partition groups observations by bucket, in chronological order. Observations
// whose local hour falls in no bucket are dropped.
func Partition(obs []Observation, offset time.Duration) map[Bucket][]Observation {
	groups := make(map[Bucket][]Observation, len(Buckets))
	for _, o := range obs {
		b, ok := BucketOf(localHour(o.Time, offset))
		if !ok {
			continue
		}
		groups[b] = append(groups[b], o)
	}
	for b := range groups {
		members := groups[b]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Time.Before(members[j].Time)
		})
	}
	return groups
}

// Aggregate summarizes obs into one Period per bucket, in Buckets order.
// Values are in units; banding is done on Fahrenheit and miles/hour.
func Aggregate(obs []Observation, offset time.Duration, units Units) []Period {
	groups := Partition(obs, offset)
	periods := make([]Period, 0, len(Buckets))
	for _, b := range Buckets {
		periods = append(periods, summarize(b, groups[b], units))
	}
	return periods
}

func summarize(b Bucket, members []Observation, units Units) Period {
	if len(members) == 0 {
		return Period{Bucket: b}
	}
	var sum float64
	for _, m := range members {
		sum += m.Temperature
	}
	avg := round1(sum / float64(len(members)))
	rep := members[len(members)/2]
	return Period{
		Bucket:           b,
		Available:        true,
		Count:            len(members),
		Temperature:      avg,
		Representative:   rep,
		TemperatureEmoji: TemperatureEmoji(units.fahrenheit(avg)),
		ConditionEmoji:   ConditionEmoji(rep.Condition),
		HumidityEmoji:    HumidityEmoji(rep.Humidity),
		WindEmoji:        WindEmoji(units.mph(rep.WindSpeed)),
	}
}

// round1 rounds to one decimal place, halves away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
