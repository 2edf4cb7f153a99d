package mocks

//go:generate mockgen -destination=./mock_driver.go -package=mocks github.com/rxtech-lab/replay-miner/internal/automation Driver
//go:generate mockgen -destination=./mock_artifact_probe.go -package=mocks github.com/rxtech-lab/replay-miner/internal/probe ArtifactProbe
//go:generate mockgen -destination=./mock_classifier.go -package=mocks github.com/rxtech-lab/replay-miner/internal/miner Classifier
