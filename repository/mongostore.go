package repository

import (
	"context"
	"fmt"
	"time"

	"carcrm/models"
	"carcrm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// 集合名
	BlobsCollection = "crmBlobs"
)

// blobDoc 主数据文档，固定_id
type blobDoc struct {
	ID      string               `bson:"_id"`
	Payload models.StoredPayload `bson:"payload"`
	SavedAt time.Time            `bson:"savedAt"`
}

// scanDoc 扫描时间戳文档，与主数据分开存
type scanDoc struct {
	ID     string `bson:"_id"`
	Millis int64  `bson:"millis"`
}

// MongoStore 基于MongoDB的存储实现，数据集仍是固定键下的单一载荷
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore 初始化MongoDB连接
func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	// 设置连接超时
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 创建客户端
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("连接MongoDB失败: %w", err)
	}

	// 检查连接
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping MongoDB失败: %w", err)
	}

	utils.Logger.Info().Str("database", dbName).Msg("已连接到MongoDB")

	return &MongoStore{
		client: client,
		coll:   client.Database(dbName).Collection(BlobsCollection),
	}, nil
}

// Close 关闭MongoDB连接
func (s *MongoStore) Close() {
	if s.client != nil {
		if err := s.client.Disconnect(context.Background()); err != nil {
			utils.Logger.Error().Err(err).Msg("断开MongoDB连接失败")
			return
		}
		utils.Logger.Info().Msg("已断开MongoDB连接")
	}
}

func (s *MongoStore) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// Load 读取完整载荷，文档不存在返回nil
func (s *MongoStore) Load() (*models.StoredPayload, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	var doc blobDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": DataKey}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("读取数据文档失败: %w", err)
	}

	utils.LogStoreOperation("load", DataKey, len(doc.Payload.Dataset.Customers))
	return &doc.Payload, nil
}

// Save 整体覆盖写入
func (s *MongoStore) Save(payload *models.StoredPayload) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	doc := blobDoc{
		ID:      DataKey,
		Payload: *payload,
		SavedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": DataKey}, doc, opts); err != nil {
		return fmt.Errorf("写入数据文档失败: %w", err)
	}

	utils.LogStoreOperation("save", DataKey, len(payload.Dataset.Customers))
	return nil
}

// LastScanAt 读取上次自动提醒扫描时间，文档不存在返回零值
func (s *MongoStore) LastScanAt() (time.Time, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	var doc scanDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": LastScanKey}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("读取扫描时间失败: %w", err)
	}
	return time.UnixMilli(doc.Millis), nil
}

// SetLastScanAt 写入扫描时间
func (s *MongoStore) SetLastScanAt(t time.Time) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	doc := scanDoc{ID: LastScanKey, Millis: t.UnixMilli()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": LastScanKey}, doc, opts); err != nil {
		return fmt.Errorf("写入扫描时间失败: %w", err)
	}
	return nil
}
