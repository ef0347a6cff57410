package catalog

import "svw.info/powerline/internal/domain"

const (
	r = domain.Red
	b = domain.Blue
	g = domain.Green
	y = domain.Yellow
)

// baseLevels are hand-authored. They may use uneven color counts.
var baseLevels = []domain.Level{
	{
		ID:   1,
		Name: "Getting Started",
		Conduits: []domain.Conduit{
			{r, r},
			{b, b},
			{},
			{},
		},
		MaxCores:   2,
		Difficulty: domain.Easy,
	},
	{
		ID:   2,
		Name: "Color Separation",
		Conduits: []domain.Conduit{
			{r, b},
			{b, r},
			{},
			{},
		},
		MaxCores:   2,
		Difficulty: domain.Easy,
	},
	{
		ID:   3,
		Name: "Triple Threat",
		Conduits: []domain.Conduit{
			{r, b, g},
			{g, r, b},
			{},
			{},
		},
		MaxCores:   3,
		Difficulty: domain.Easy,
	},
	{
		ID:   4,
		Name: "Careful Planning",
		Conduits: []domain.Conduit{
			{r, b, r},
			{g, b, g},
			{b, r, g},
			{},
			{},
		},
		MaxCores:   3,
		Difficulty: domain.Medium,
	},
	{
		ID:   5,
		Name: "No Room for Error",
		Conduits: []domain.Conduit{
			{r, r, b, b},
			{g, g, y, y},
			{b, b, r, r},
			{y, y, g, g},
			{},
			{},
		},
		MaxCores:   4,
		Difficulty: domain.Medium,
	},
}
