package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

func TestMasterListDiscoversColumns(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerGetMasterDB", []map[string]any{
		{"_id": "id-1", "品番": "A-100", "color": "red", "imageURL": "https://example.com/a.png"},
		{"_id": "id-2", "品番": "B-200", "size": "L"},
	})

	recorder := harness.postJSON(t, "/api/master/list", map[string]any{})

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	require.Equal(t, []any{"品番", "color", "size"}, body["columns"])
	require.Len(t, body["rows"], 2)
}

func TestMasterListSurfacesRowMetadata(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerGetMasterDB", []map[string]any{
		{"_id": map[string]any{"$oid": "64fa01"}, "品番": "A-100", "imageURL": "https://example.com/a.png"},
		{"_id": "id-2", "品番": "B-200"},
	})

	recorder := harness.postJSON(t, "/api/master/list", map[string]any{})

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	meta, ok := body["rowMeta"].([]any)
	require.True(t, ok)
	require.Len(t, meta, 2)
	firstMeta, ok := meta[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "64fa01", firstMeta["id"])
	require.Equal(t, "https://example.com/a.png", firstMeta["imageURL"])
	secondMeta, ok := meta[1].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "id-2", secondMeta["id"])
	require.NotContains(t, secondMeta, "imageURL")
	require.NotContains(t, body["columns"], "_id")
	require.NotContains(t, body["columns"], "imageURL")
}

func TestMasterImportCSVToleratesShortRows(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerInsertMasterDBWithHistory", map[string]any{"insertedId": "id-1"})
	document := []byte("品番,color\nA-100,red\nB-200\n,blue\n")

	recorder := harness.postFile(t, "/api/master/import", "file", "master.csv", document)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	require.Equal(t, float64(2), body["insertedCount"])

	results, ok := body["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 3)
	secondRow, ok := results[1].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, secondRow["inserted"])
	thirdRow, ok := results[2].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "missing_product_number", thirdRow["error"])

	requests := harness.stub.requests("/customerInsertMasterDBWithHistory")
	require.Len(t, requests, 2)
	secondData, ok := requests[1]["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "B-200", secondData["品番"])
	require.NotContains(t, secondData, "color")
}

func TestMasterInsertRequiresProductNumber(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	recorder := harness.postJSON(t, "/api/master/insert", map[string]any{
		"data": map[string]string{"color": "red"},
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "missing_product_number", decodeBody(t, recorder)["error"])
	require.Zero(t, harness.stub.requestCount("/customerInsertMasterDBWithHistory"))
}

func TestMasterInsertForwardsRecord(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerInsertMasterDBWithHistory", map[string]any{"insertedId": "id-9"})

	recorder := harness.postJSON(t, "/api/master/insert", map[string]any{
		"data": map[string]string{"品番": " A-100 ", "color": "red"},
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "id-9", decodeBody(t, recorder)["insertedId"])

	requests := harness.stub.requests("/customerInsertMasterDBWithHistory")
	require.Len(t, requests, 1)
	require.Equal(t, "tenant_a", requests[0]["dbName"])
	data, ok := requests[0]["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "A-100", data["品番"])
}

func TestMasterUpdateNoChangesNeverReachesUpstream(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	recorder := harness.postJSON(t, "/api/master/update", map[string]any{
		"recordId": "id-1",
		"original": map[string]any{"品番": "A-100", "color": "red"},
		"edited":   map[string]string{"品番": "A-100", "color": " red "},
		"fields":   []string{"品番", "color"},
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "no_changes", decodeBody(t, recorder)["error"])
	require.Zero(t, harness.stub.requestCount("/customerUpdateMasterDBWithHistory"))
}

func TestMasterUpdateSingleFieldProducesOneChange(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerUpdateMasterDBWithHistory", map[string]any{"modifiedCount": 1})

	recorder := harness.postJSON(t, "/api/master/update", map[string]any{
		"recordId": "id-1",
		"original": map[string]any{"品番": "A-100", "color": "red"},
		"edited":   map[string]string{"品番": "A-100", "color": "blue"},
		"fields":   []string{"品番", "color"},
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	changes, ok := body["changes"].([]any)
	require.True(t, ok)
	require.Len(t, changes, 1)

	requests := harness.stub.requests("/customerUpdateMasterDBWithHistory")
	require.Len(t, requests, 1)
	require.Equal(t, "admin", requests[0]["role"])
	require.Equal(t, "tanaka", requests[0]["username"])
}

func TestMasterBulkDeleteSendsExactlySelectedIDs(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerBulkDeleteWithHistory", map[string]any{"deletedCount": 2})

	recorder := harness.postJSON(t, "/api/master/bulk-delete", map[string]any{
		"recordIds": []string{"id-1", "id-2"},
		"records": []map[string]any{
			{"_id": "id-1", "品番": "A-100"},
			{"_id": "id-2", "品番": "B-200"},
		},
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	requests := harness.stub.requests("/customerBulkDeleteWithHistory")
	require.Len(t, requests, 1)
	require.Equal(t, []any{"id-1", "id-2"}, requests[0]["recordIds"])
}

func TestMasterBulkDeleteEmptySelectionRejected(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	recorder := harness.postJSON(t, "/api/master/bulk-delete", map[string]any{
		"recordIds": []string{},
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Zero(t, harness.stub.requestCount("/customerBulkDeleteWithHistory"))
}

func TestMasterMutationsForbiddenForSupervisor(t *testing.T) {
	harness := newHandlerHarness(t, supervisorSession())

	insertRecorder := harness.postJSON(t, "/api/master/insert", map[string]any{
		"data": map[string]string{"品番": "A-100"},
	})
	require.Equal(t, http.StatusForbidden, insertRecorder.Code)

	deleteRecorder := harness.postJSON(t, "/api/master/bulk-delete", map[string]any{
		"recordIds": []string{"id-1"},
	})
	require.Equal(t, http.StatusForbidden, deleteRecorder.Code)

	require.Zero(t, harness.stub.requestCount("/customerInsertMasterDBWithHistory"))
	require.Zero(t, harness.stub.requestCount("/customerBulkDeleteWithHistory"))
}

func TestMasterRecordHistory(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerGetMasterHistory", []model.HistoryEntry{
		{Timestamp: "2026-08-30T10:00:00Z", ChangedBy: "tanaka"},
	})

	recorder := harness.postJSON(t, "/api/master/record-history", map[string]any{"recordId": "id-1"})

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	require.Len(t, body["entries"], 1)
}
