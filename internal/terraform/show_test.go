package terraform

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShowStateParsesResources(t *testing.T) {
	bin := writeTool(t, `echo '{"values":{"root_module":{"resources":[{"address":"aws_s3_bucket.demo"},{"address":"aws_lambda_function.demo"}]}}}'
`)
	orch := newTestOrchestrator(t, t.TempDir(), bin, Timeouts{})

	snap, err := orch.ShowState(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, snap.ResourceCount)
	require.Equal(t, []string{"aws_s3_bucket.demo", "aws_lambda_function.demo"}, snap.ResourceAddresses)
	require.NotEmpty(t, snap.Raw)
}

func TestShowStateEmptyStateIsNotAFailure(t *testing.T) {
	bin := writeTool(t, `echo '{"values":{"root_module":{}}}'
`)
	orch := newTestOrchestrator(t, t.TempDir(), bin, Timeouts{})

	snap, err := orch.ShowState(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, snap.ResourceCount)
	require.Empty(t, snap.ResourceAddresses)
}

func TestShowStateMalformedDocumentIsParseFailure(t *testing.T) {
	bin := writeTool(t, `echo '{"values": not json'
`)
	orch := newTestOrchestrator(t, t.TempDir(), bin, Timeouts{})

	_, err := orch.ShowState(context.Background())
	require.True(t, IsParseFailure(err), "expected parse failure, got %v", err)
	require.False(t, IsProcessFailure(err))
}

func TestShowStateProcessFailureIsDistinctFromParseFailure(t *testing.T) {
	bin := writeTool(t, `echo "Error: no state file" >&2
exit 1
`)
	orch := newTestOrchestrator(t, t.TempDir(), bin, Timeouts{})

	_, err := orch.ShowState(context.Background())
	require.True(t, IsProcessFailure(err), "expected process failure, got %v", err)
	require.False(t, IsParseFailure(err))
	require.Contains(t, err.Error(), "no state file")
}

func TestShowOutputsParsesSensitivity(t *testing.T) {
	bin := writeTool(t, `echo '{"bucket_name":{"value":"demo-bucket","type":"string"},"api_key":{"value":"s3cr3t","type":"string","sensitive":true}}'
`)
	orch := newTestOrchestrator(t, t.TempDir(), bin, Timeouts{})

	outputs, err := orch.ShowOutputs(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	require.False(t, outputs["bucket_name"].Sensitive)
	require.JSONEq(t, `"demo-bucket"`, string(outputs["bucket_name"].Value))

	require.True(t, outputs["api_key"].Sensitive)
	require.JSONEq(t, `"s3cr3t"`, string(outputs["api_key"].Value))
}

func TestShowOutputsEmptySet(t *testing.T) {
	bin := writeTool(t, `echo '{}'
`)
	orch := newTestOrchestrator(t, t.TempDir(), bin, Timeouts{})

	outputs, err := orch.ShowOutputs(context.Background())
	require.NoError(t, err)
	require.Empty(t, outputs)
}

func TestParseStateDocumentMissingAddress(t *testing.T) {
	snap, err := parseStateDocument([]byte(`{"values":{"root_module":{"resources":[{}]}}}`))
	require.NoError(t, err)
	require.Equal(t, []string{"unknown"}, snap.ResourceAddresses)
}

// lifecycleTool emulates the full tool lifecycle against files in the
// working directory: plan writes the artifact, apply consumes it and creates
// state, destroy removes state, show/output reflect whatever state exists.
const lifecycleTool = `case "$1" in
  version)
    echo "FakeTool v1.2.3"
    ;;
  plan)
    out=""
    for a in "$@"; do case "$a" in -out=*) out="${a#-out=}";; esac; done
    echo "planned" > "$out"
    echo "Plan: 2 to add, 0 to change, 0 to destroy."
    ;;
  apply)
    plan=""
    for a in "$@"; do case "$a" in apply|-*) ;; *) plan="$a";; esac; done
    if [ ! -f "$plan" ]; then
      echo "Error: saved plan file not found" >&2
      exit 1
    fi
    rm -f "$plan"
    echo "applied" > state.marker
    echo "Apply complete! Resources: 2 added, 0 changed, 0 destroyed."
    ;;
  destroy)
    rm -f state.marker
    echo "Destroy complete! Resources: 2 destroyed."
    ;;
  show)
    if [ -f state.marker ]; then
      echo '{"values":{"root_module":{"resources":[{"address":"aws_s3_bucket.demo"},{"address":"aws_lambda_function.demo"}]}}}'
    else
      echo '{"values":{"root_module":{}}}'
    fi
    ;;
  output)
    if [ -f state.marker ]; then
      echo '{"bucket_name":{"value":"demo-bucket","type":"string"}}'
    else
      echo '{}'
    fi
    ;;
  *)
    echo "unknown subcommand: $1" >&2
    exit 127
    ;;
esac
`

func TestLifecycleEndToEnd(t *testing.T) {
	workDir := t.TempDir()
	bin := writeTool(t, lifecycleTool)
	orch := newTestOrchestrator(t, workDir, bin, Timeouts{})
	ctx := context.Background()

	info := orch.CheckAvailability(ctx)
	require.True(t, info.Available)
	require.Equal(t, "FakeTool v1.2.3", info.Version)

	res, err := orch.Plan(ctx)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.FileExists(t, filepath.Join(workDir, "tfplan"))

	res, err = orch.Apply(ctx)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Contains(t, res.Stdout, "Apply complete!")

	snap, err := orch.ShowState(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, snap.ResourceCount)

	outputs, err := orch.ShowOutputs(ctx)
	require.NoError(t, err)
	var bucket string
	require.NoError(t, json.Unmarshal(outputs["bucket_name"].Value, &bucket))
	require.Equal(t, "demo-bucket", bucket)

	res, err = orch.Destroy(ctx)
	require.NoError(t, err)
	require.True(t, res.Success)

	snap, err = orch.ShowState(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, snap.ResourceCount)
}

func TestApplyWithoutPlanArtifactSurfacesToolError(t *testing.T) {
	workDir := t.TempDir()
	bin := writeTool(t, lifecycleTool)
	orch := newTestOrchestrator(t, workDir, bin, Timeouts{})

	res, err := orch.Apply(context.Background())
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Contains(t, res.Error, "saved plan file not found")

	_, statErr := os.Stat(filepath.Join(workDir, "state.marker"))
	require.True(t, os.IsNotExist(statErr))
}
