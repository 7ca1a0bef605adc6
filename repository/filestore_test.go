package repository_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"carcrm/models"
	"carcrm/repository"
	"carcrm/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := repository.NewFileStore(t.TempDir())
	require.NoError(t, err)

	payload := repository.SeedPayload(time.Now())
	require.NoError(t, store.Save(payload))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// 读写往返得到相等的数据集，扫描时间戳不参与比较
	want, err := json.Marshal(payload)
	require.NoError(t, err)
	got, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store, err := repository.NewFileStore(t.TempDir())
	require.NoError(t, err)

	payload, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestFileStoreLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := repository.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, repository.DataKey+".json"), []byte("{broken"), 0o644))

	_, err = store.Load()
	assert.Error(t, err)
}

func TestFileStoreScanTimestamp(t *testing.T) {
	store, err := repository.NewFileStore(t.TempDir())
	require.NoError(t, err)

	// 文件缺失表示从未扫描
	last, err := store.LastScanAt()
	require.NoError(t, err)
	assert.True(t, last.IsZero())

	at := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetLastScanAt(at))

	last, err = store.LastScanAt()
	require.NoError(t, err)
	assert.Equal(t, at.UnixMilli(), last.UnixMilli())
}

func TestLoadOrSeedFallsBackToSeed(t *testing.T) {
	store := repository.NewMemStore()

	payload := repository.LoadOrSeed(store)
	require.NotNil(t, payload)
	assert.NotEmpty(t, payload.Dataset.Customers)

	// 种子数据应当已立即持久化
	saved, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, len(payload.Dataset.Customers), len(saved.Dataset.Customers))
}

func TestLoadOrSeedRejectsEmptyCustomerList(t *testing.T) {
	store := repository.NewMemStore()
	require.NoError(t, store.Save(&models.StoredPayload{
		Users: []models.User{{ID: "u1", Username: "admin"}},
	}))

	// 客户列表为空视为无效载荷，重新播种
	payload := repository.LoadOrSeed(store)
	assert.NotEmpty(t, payload.Dataset.Customers)
}
