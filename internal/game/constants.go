package game

// Engine tuning. Distances are canvas units, rates are per frame.
const (
	BallRadius          = 15.0
	BallFriction        = 0.99
	BallMinSpeed        = 0.4
	LaunchSpeed         = 8.0
	TrailCapacity       = 15
	GlowSpeedDivisor    = 10.0
	GlowDecay           = 0.95
	BoundaryRestitution = 0.8
	SegmentRestitution  = 0.9
	SegmentPushSlack    = 2.0

	NodeRadius       = 8.0
	NodeRestitution  = 0.8
	NodePushSlack    = 1.0
	NodeBounceEffect = 4.0
	NodeEffectDecay  = 0.9
	SpawnMinDistance = 50.0

	BaseSegments         = 6
	SegmentsPerLevel     = 3
	MaxAnchors           = 8
	AnchorProbability    = 0.6
	GeneratorProbability = 0.5
	MinSegmentLength     = 80.0
	SegmentLengthRange   = 120.0
	ClusterTolerance     = 5.0

	BaseShots     = 6
	ShotsPerLevel = 1

	PlacementInset     = 50.0
	PlacementClearance = 30.0
	PlacementAttempts  = 100

	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultMargin = 50.0
)
