package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"strokesense/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifierNetwork(classes int) *Network {
	weights := make([][]float64, classes)
	for i := range weights {
		weights[i] = make([]float64, ECGFeatureCount)
	}
	return &Network{
		InputSize: ECGFeatureCount,
		Layers: []Layer{
			{Weights: weights, Bias: make([]float64, classes), Activation: "softmax"},
		},
	}
}

func artifactTransformer() *FeatureTransformer {
	return &FeatureTransformer{
		Fields: []FieldSpec{
			{Name: "age", Kind: FieldNumeric, Mean: 40, Scale: 20},
			{Name: "heart_disease", Kind: FieldCategorical, Categories: []string{"0", "1"}},
		},
	}
}

func writeArtifact(t *testing.T, path string, artifact any) {
	t.Helper()
	data, err := json.Marshal(artifact)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// writeAllArtifacts lays out a complete, loadable model directory.
func writeAllArtifacts(t *testing.T, dir string, ensembleSize int) {
	t.Helper()
	writeArtifact(t, filepath.Join(dir, ECGClassifierFile), classifierNetwork(4))
	writeArtifact(t, filepath.Join(dir, HeartDiseaseFile), classifierNetwork(4))
	writeArtifact(t, filepath.Join(dir, TransformerFile), artifactTransformer())

	featureCount := artifactTransformer().OutputSize()
	for i := 0; i < ensembleSize; i++ {
		writeArtifact(t, filepath.Join(dir, StrokeModelsDir, string(rune('a'+i))+".json"), &StrokeClassifier{
			Coefficients: make([]float64, featureCount),
			Intercept:    0.5,
		})
	}
}

func TestLoadCompleteRegistry(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir, 3)

	reg, err := Load(dir)
	require.NoError(t, err)

	assert.NotNil(t, reg.ECGClassifier)
	assert.NotNil(t, reg.HeartDisease)
	assert.NotNil(t, reg.Transformer)
	assert.Len(t, reg.StrokeEnsemble, 3)
	// Names default to the file name, in sorted order.
	assert.Equal(t, "a.json", reg.StrokeEnsemble[0].Name)
	assert.Equal(t, "c.json", reg.StrokeEnsemble[2].Name)
}

func TestLoadMissingArtifactIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir, 1)
	require.NoError(t, os.Remove(filepath.Join(dir, HeartDiseaseFile)))

	_, err := Load(dir)
	require.Error(t, err)

	var loadErr *errs.ModelLoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, HeartDiseaseFile, loadErr.Artifact)
}

func TestLoadCorruptArtifactIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ECGClassifierFile), []byte("{not json"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)

	var loadErr *errs.ModelLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoadEmptyEnsembleIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir, 1)
	require.NoError(t, os.Remove(filepath.Join(dir, StrokeModelsDir, "a.json")))

	_, err := Load(dir)
	require.Error(t, err)

	var loadErr *errs.ModelLoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, StrokeModelsDir, loadErr.Artifact)
}

func TestLoadRejectsFeatureCountMismatch(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir, 1)
	// One coefficient short of the transformer's output width.
	writeArtifact(t, filepath.Join(dir, StrokeModelsDir, "a.json"), &StrokeClassifier{
		Coefficients: make([]float64, artifactTransformer().OutputSize()-1),
		Intercept:    0,
	})

	_, err := Load(dir)
	require.Error(t, err)

	var loadErr *errs.ModelLoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "a.json", loadErr.Artifact)
}

func TestLoadRejectsWrongECGInputSize(t *testing.T) {
	dir := t.TempDir()
	writeAllArtifacts(t, dir, 1)

	wrong := &Network{
		InputSize: 10,
		Layers: []Layer{
			{Weights: [][]float64{make([]float64, 10), make([]float64, 10), make([]float64, 10), make([]float64, 10)}, Bias: make([]float64, 4), Activation: "softmax"},
		},
	}
	writeArtifact(t, filepath.Join(dir, ECGClassifierFile), wrong)

	_, err := Load(dir)
	require.Error(t, err)

	var loadErr *errs.ModelLoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ECGClassifierFile, loadErr.Artifact)
}
