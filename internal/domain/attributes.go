package domain

// Categorical attribute domains. Filters may only name values listed here.

type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "non_binary"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary:
		return true
	}
	return false
}

type BodyType string

const (
	BodySlim     BodyType = "slim"
	BodyAthletic BodyType = "athletic"
	BodyAverage  BodyType = "average"
	BodyCurvy    BodyType = "curvy"
	BodyMuscular BodyType = "muscular"
	BodyPlusSize BodyType = "plus_size"
)

func (b BodyType) Valid() bool {
	switch b {
	case BodySlim, BodyAthletic, BodyAverage, BodyCurvy, BodyMuscular, BodyPlusSize:
		return true
	}
	return false
}

type Race string

const (
	RaceAsian         Race = "asian"
	RaceBlack         Race = "black"
	RaceHispanic      Race = "hispanic"
	RaceMiddleEastern Race = "middle_eastern"
	RaceMixed         Race = "mixed"
	RaceWhite         Race = "white"
	RaceOther         Race = "other"
)

func (r Race) Valid() bool {
	switch r {
	case RaceAsian, RaceBlack, RaceHispanic, RaceMiddleEastern, RaceMixed, RaceWhite, RaceOther:
		return true
	}
	return false
}

type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobTemporary  JobType = "temporary"
	JobInternship JobType = "internship"
	JobFreelance  JobType = "freelance"
)

func (j JobType) Valid() bool {
	switch j {
	case JobFullTime, JobPartTime, JobContract, JobTemporary, JobInternship, JobFreelance:
		return true
	}
	return false
}
