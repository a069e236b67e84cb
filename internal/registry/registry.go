// Package registry loads the pretrained model artifacts from local disk and
// exposes them as read-only inference handles shared across all requests.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"strokesense/internal/errs"
)

// Artifact file layout inside the model directory. The directory is
// populated from object storage before the registry is loaded.
const (
	ECGClassifierFile = "ecg_classifier.json"
	HeartDiseaseFile  = "heart_disease_classifier.json"
	TransformerFile   = "transformer.json"
	StrokeModelsDir   = "stroke_models"
	ECGFeatureCount   = 187
	ECGClassCount     = 4
)

// Registry holds the four model handles for the process lifetime. No field
// is mutated after Load returns, so a single instance is shared across
// concurrently handled requests without synchronization.
type Registry struct {
	ECGClassifier  *Network
	HeartDisease   *Network
	StrokeEnsemble []*StrokeClassifier
	Transformer    *FeatureTransformer
}

// Load reads every artifact from dir. Any missing or corrupt artifact is
// fatal: the caller must not serve requests with a partially loaded
// registry.
func Load(dir string) (*Registry, error) {
	ecg, err := loadNetwork(filepath.Join(dir, ECGClassifierFile))
	if err != nil {
		return nil, &errs.ModelLoadError{Artifact: ECGClassifierFile, Err: err}
	}
	if ecg.InputSize != ECGFeatureCount {
		return nil, &errs.ModelLoadError{
			Artifact: ECGClassifierFile,
			Err:      fmt.Errorf("expects %d inputs, the feature vector has %d", ecg.InputSize, ECGFeatureCount),
		}
	}
	if out := len(ecg.Layers[len(ecg.Layers)-1].Weights); out != ECGClassCount {
		return nil, &errs.ModelLoadError{
			Artifact: ECGClassifierFile,
			Err:      fmt.Errorf("produces %d classes, expected %d", out, ECGClassCount),
		}
	}

	heart, err := loadNetwork(filepath.Join(dir, HeartDiseaseFile))
	if err != nil {
		return nil, &errs.ModelLoadError{Artifact: HeartDiseaseFile, Err: err}
	}
	if heart.InputSize != ECGFeatureCount {
		return nil, &errs.ModelLoadError{
			Artifact: HeartDiseaseFile,
			Err:      fmt.Errorf("expects %d inputs, the feature vector has %d", heart.InputSize, ECGFeatureCount),
		}
	}

	transformer, err := loadTransformer(filepath.Join(dir, TransformerFile))
	if err != nil {
		return nil, &errs.ModelLoadError{Artifact: TransformerFile, Err: err}
	}

	ensemble, err := loadStrokeEnsemble(filepath.Join(dir, StrokeModelsDir), transformer.OutputSize())
	if err != nil {
		return nil, err
	}

	return &Registry{
		ECGClassifier:  ecg,
		HeartDisease:   heart,
		StrokeEnsemble: ensemble,
		Transformer:    transformer,
	}, nil
}

func loadNetwork(path string) (*Network, error) {
	var network Network
	if err := decodeArtifact(path, &network); err != nil {
		return nil, err
	}
	if err := network.validate(); err != nil {
		return nil, err
	}
	return &network, nil
}

func loadTransformer(path string) (*FeatureTransformer, error) {
	var transformer FeatureTransformer
	if err := decodeArtifact(path, &transformer); err != nil {
		return nil, err
	}
	if err := transformer.validate(); err != nil {
		return nil, err
	}
	return &transformer, nil
}

func loadStrokeEnsemble(dir string, featureCount int) ([]*StrokeClassifier, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &errs.ModelLoadError{Artifact: StrokeModelsDir, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	// Deterministic ensemble order regardless of directory listing order.
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, &errs.ModelLoadError{Artifact: StrokeModelsDir, Err: fmt.Errorf("no stroke models found in %s", dir)}
	}

	ensemble := make([]*StrokeClassifier, 0, len(paths))
	for _, path := range paths {
		var classifier StrokeClassifier
		if err := decodeArtifact(path, &classifier); err != nil {
			return nil, &errs.ModelLoadError{Artifact: filepath.Base(path), Err: err}
		}
		if classifier.Name == "" {
			classifier.Name = filepath.Base(path)
		}
		if err := classifier.validate(); err != nil {
			return nil, &errs.ModelLoadError{Artifact: filepath.Base(path), Err: err}
		}
		if len(classifier.Coefficients) != featureCount {
			return nil, &errs.ModelLoadError{
				Artifact: filepath.Base(path),
				Err:      fmt.Errorf("expects %d features, the transformer produces %d", len(classifier.Coefficients), featureCount),
			}
		}
		ensemble = append(ensemble, &classifier)
	}

	return ensemble, nil
}

func decodeArtifact(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("corrupt artifact: %w", err)
	}
	return nil
}
