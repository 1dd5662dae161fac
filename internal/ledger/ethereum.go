package ledger

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/anonto42/fairnet/backend/internal/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// fairnetABI covers the read surface of the FairNet contract. Write methods
// (posting, minting, trading, following) are submitted by the wallet layer,
// not this service.
const fairnetABI = `[
  {"type":"function","name":"getAllPosts","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":[
    {"name":"id","type":"uint256"},
    {"name":"author","type":"address"},
    {"name":"owner","type":"address"},
    {"name":"cid","type":"string"},
    {"name":"timestamp","type":"uint256"},
    {"name":"isPremium","type":"bool"},
    {"name":"isMinted","type":"bool"},
    {"name":"forSale","type":"bool"},
    {"name":"price","type":"uint256"},
    {"name":"tipTotal","type":"uint256"}]}]},
  {"type":"function","name":"getProfile","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"getMyFollowing","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
  {"type":"function","name":"unlockPost","stateMutability":"view","inputs":[{"name":"postId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]}
]`

// rawPost mirrors the contract's post tuple.
type rawPost struct {
	Id        *big.Int
	Author    common.Address
	Owner     common.Address
	Cid       string
	Timestamp *big.Int
	IsPremium bool
	IsMinted  bool
	ForSale   bool
	Price     *big.Int
	TipTotal  *big.Int
}

// EthClient implements Client against the FairNet contract over JSON-RPC.
type EthClient struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
}

// Dial connects to the ledger RPC endpoint and binds the FairNet contract.
func Dial(ctx context.Context, rpcURL, contractAddr string) (*EthClient, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger RPC: %w", err)
	}

	// Ping the node to verify connection
	if _, err := client.ChainID(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach ledger RPC: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(fairnetABI))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	contract := bind.NewBoundContract(common.HexToAddress(contractAddr), parsed, client, client, client)

	log.Println("Successfully connected to ledger RPC!")
	return &EthClient{eth: client, contract: contract}, nil
}

// Close releases the underlying RPC connection.
func (c *EthClient) Close() {
	c.eth.Close()
}

func (c *EthClient) GetAllPosts(ctx context.Context) ([]models.PostRecord, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAllPosts"); err != nil {
		return nil, fmt.Errorf("getAllPosts: %w", err)
	}
	raw := *abi.ConvertType(out[0], new([]rawPost)).(*[]rawPost)

	posts := make([]models.PostRecord, len(raw))
	for i, p := range raw {
		posts[i] = models.PostRecord{
			ID:            p.Id.Uint64(),
			Author:        p.Author,
			Owner:         p.Owner,
			ContentRef:    p.Cid,
			CreatedAt:     time.Unix(p.Timestamp.Int64(), 0).UTC(),
			IsPremium:     p.IsPremium,
			IsCollectible: p.IsMinted,
			ForSale:       p.ForSale,
			Price:         p.Price,
			TipTotal:      p.TipTotal,
		}
	}
	return posts, nil
}

func (c *EthClient) GetProfile(ctx context.Context, addr common.Address) (models.ProfileRecord, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProfile", addr); err != nil {
		return models.ProfileRecord{}, fmt.Errorf("getProfile %s: %w", addr.Hex(), err)
	}
	raw := *abi.ConvertType(out[0], new(string)).(*string)
	return classifyProfile(raw), nil
}

// GetFollowing calls getMyFollowing with the viewer as the caller address;
// the contract derives the follow list from msg.sender.
func (c *EthClient) GetFollowing(ctx context.Context, viewer common.Address) ([]common.Address, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx, From: viewer}
	if err := c.contract.Call(opts, &out, "getMyFollowing"); err != nil {
		return nil, fmt.Errorf("getMyFollowing %s: %w", viewer.Hex(), err)
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// UnlockPost resolves the real content reference of a premium post. The
// entitlement check runs against the caller address, so the call is scoped
// to the viewer. A contract revert means no valid subscription.
func (c *EthClient) UnlockPost(ctx context.Context, viewer common.Address, postID uint64) (string, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx, From: viewer}
	if err := c.contract.Call(opts, &out, "unlockPost", new(big.Int).SetUint64(postID)); err != nil {
		if isRevert(err) {
			return "", fmt.Errorf("unlock post %d: %w", postID, ErrNotEntitled)
		}
		return "", fmt.Errorf("unlock post %d: %w", postID, err)
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func isRevert(err error) bool {
	return err != nil && strings.Contains(err.Error(), "execution reverted")
}
