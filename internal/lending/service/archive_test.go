package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type memoryBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	order   []string
	fail    bool
}

func (b *memoryBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return nil, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if b.objects == nil {
		b.objects = map[string][]byte{}
	}
	b.objects[*in.Key] = data
	b.order = append(b.order, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func decodeLines(t *testing.T, data []byte) []archivedRecord {
	t.Helper()
	var out []archivedRecord
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		var r archivedRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		out = append(out, r)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestArchiveUploadsNewRecordsOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.set(t, "HWSet1", 10)
	f.project(t, "P", "alice")

	bucket := &memoryBucket{}
	archiver := &ArchiveService{Store: f.st, Client: bucket, Bucket: "usage", Prefix: "hwlend", BatchSize: 2}

	n, err := archiver.Archive(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Empty(t, bucket.order)

	for range 3 {
		_, err := f.inventory.Checkout(ctx, "P", "HWSet1", 1, "alice")
		require.NoError(t, err)
	}

	n, err = archiver.Archive(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Len(t, bucket.order, 2)

	var all []archivedRecord
	for _, key := range bucket.order {
		require.True(t, strings.HasPrefix(key, "hwlend/"), key)
		require.True(t, strings.HasSuffix(key, ".jsonl"), key)
		all = append(all, decodeLines(t, bucket.objects[key])...)
	}
	require.Len(t, all, 3)
	for _, r := range all {
		require.Equal(t, "P", r.ProjectID)
		require.Equal(t, "HWSet1", r.HWSet)
		require.Equal(t, 1, r.Qty)
	}
	require.Less(t, all[0].ID, all[2].ID)

	n, err = archiver.Archive(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	pending, err := f.st.Usage().ListUnarchived(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestArchiveLeavesRecordsPendingOnFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.set(t, "HWSet1", 10)
	f.project(t, "P", "alice")
	_, err := f.inventory.Checkout(ctx, "P", "HWSet1", 1, "alice")
	require.NoError(t, err)

	bucket := &memoryBucket{fail: true}
	archiver := &ArchiveService{Store: f.st, Client: bucket, Bucket: "usage"}

	_, err = archiver.Archive(ctx)
	require.Error(t, err)

	pending, err := f.st.Usage().ListUnarchived(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	bucket.fail = false
	n, err := archiver.Archive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestArchiveIncludesRecordsOfDeletedProjects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.set(t, "HWSet1", 10)
	f.project(t, "P", "alice")

	_, err := f.inventory.Checkout(ctx, "P", "HWSet1", 4, "alice")
	require.NoError(t, err)
	require.NoError(t, f.projects.DeleteProject(ctx, "P", "alice"))

	bucket := &memoryBucket{}
	archiver := &ArchiveService{Store: f.st, Client: bucket, Bucket: "usage"}
	n, err := archiver.Archive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	lines := decodeLines(t, bucket.objects[bucket.order[0]])
	require.Len(t, lines, 2)
	require.Equal(t, "P", lines[1].ProjectID)
	require.Equal(t, "return", string(lines[1].Action))
}
