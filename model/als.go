// Copyright 2026 movierec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/moviemind/movierec/base/floats"
	"github.com/moviemind/movierec/base/log"
	"github.com/moviemind/movierec/base/parallel"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// ALS is the matrix factorization model for explicit feedback optimized by
// alternating least squares. The rating given by user u to item i is
// estimated by
//
//	\hat r_{ui} = p_u^T q_i
//
// where p_u and q_i minimize the regularized squared reconstruction error
// over observed ratings. With one side fixed, each factor of the other side
// is the solution of a small least-squares problem, so every epoch solves the
// per-user and then the per-item normal equations:
//
//	p_u = (Q_u^T Q_u + \lambda I)^{-1} Q_u^T r(u)
//	q_i = (P_i^T P_i + \lambda I)^{-1} P_i^T r(i)
//
// Hyper-parameters:
//
//	NFactors   - The number of latent factors. Default is 10.
//	NEpochs    - The number of training epochs. Default is 10.
//	Reg        - The strength of regularization. Default is 0.06.
//	InitMean   - The mean of initial random latent factors. Default is 0.
//	InitStdDev - The standard deviation of initial random latent factors. Default is 0.1.
type ALS struct {
	BaseMatrixFactorization
	// Hyper parameters
	nFactors   int
	nEpochs    int
	reg        float32
	initMean   float32
	initStdDev float32
}

// NewALS creates an ALS model.
func NewALS(params Params) *ALS {
	als := new(ALS)
	als.SetParams(params)
	return als
}

// SetParams sets hyper-parameters of the ALS model.
func (als *ALS) SetParams(params Params) {
	als.BaseModel.SetParams(params)
	als.nFactors = als.Params.GetInt(NFactors, 10)
	als.nEpochs = als.Params.GetInt(NEpochs, 10)
	als.reg = als.Params.GetFloat32(Reg, 0.06)
	als.initMean = als.Params.GetFloat32(InitMean, 0)
	als.initStdDev = als.Params.GetFloat32(InitStdDev, 0.1)
}

// Predict the rating given by a user to a item. NaN is returned if the user
// or the item was never seen during training.
func (als *ALS) Predict(userId, itemId int32) float32 {
	userIndex := als.UserIndex.ToNumber(userId)
	itemIndex := als.ItemIndex.ToNumber(itemId)
	if !als.IsUserPredictable(userIndex) || !als.IsItemPredictable(itemIndex) {
		return math32.NaN()
	}
	return als.InternalPredict(userIndex, itemIndex)
}

// InternalPredict predicts a rating given by a user index and a item index.
func (als *ALS) InternalPredict(userIndex, itemIndex int32) float32 {
	return floats.Dot(als.UserFactor[userIndex], als.ItemFactor[itemIndex])
}

// Fit the ALS model. Factors are initialized from a seeded normal
// distribution, then each epoch recomputes all user factors with item factors
// fixed and all item factors with user factors fixed. Solves inside an epoch
// are independent and run on config.Jobs workers.
func (als *ALS) Fit(trainSet *DataSet, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	log.Logger().Info("fit ALS",
		zap.Int("train_set_size", trainSet.Count()),
		zap.Int("n_factors", als.nFactors),
		zap.Int("n_epochs", als.nEpochs),
		zap.Float32("reg", als.reg),
		zap.Int("jobs", config.Jobs))
	als.Init(trainSet)
	als.UserFactor = als.rng.NormalMatrix(trainSet.UserCount(), als.nFactors, als.initMean, als.initStdDev)
	als.ItemFactor = als.rng.NormalMatrix(trainSet.ItemCount(), als.nFactors, als.initMean, als.initStdDev)
	start := time.Now()
	for epoch := 1; epoch <= als.nEpochs; epoch++ {
		// Recompute all user factors: p_u = (Q_u^T Q_u + \lambda I)^{-1} Q_u^T r(u)
		if err := als.solve(trainSet.UserItems, trainSet.UserValues, als.ItemFactor, als.UserFactor, config.Jobs); err != nil {
			return errors.Trace(err)
		}
		// Recompute all item factors: q_i = (P_i^T P_i + \lambda I)^{-1} P_i^T r(i)
		if err := als.solve(trainSet.ItemUsers, trainSet.ItemValues, als.UserFactor, als.ItemFactor, config.Jobs); err != nil {
			return errors.Trace(err)
		}
		if config.Verbose > 0 && epoch%config.Verbose == 0 {
			log.Logger().Info("fit ALS",
				zap.Int("epoch", epoch),
				zap.Int("n_epochs", als.nEpochs),
				zap.Float32("train_rmse", als.trainingError(trainSet)))
		}
	}
	log.Logger().Info("fit ALS complete", zap.Duration("time", time.Since(start)))
	return nil
}

// solve recomputes one side of the factorization while the other side stays
// fixed. postings[s] lists the indices on the fixed side rated by subject s,
// values[s] the corresponding ratings. The normal equations accumulate in
// float64 and solve by Cholesky decomposition, which exists since reg > 0
// makes the system positive definite.
func (als *ALS) solve(postings [][]int32, values [][]float32, fixed, dst [][]float32, jobs int) error {
	return parallel.Parallel(len(postings), jobs, func(_, s int) error {
		if len(postings[s]) == 0 {
			// cold subject, the factor stays at its random initialization and
			// IsUserPredictable/IsItemPredictable masks it out
			return nil
		}
		a := make([]float64, als.nFactors*als.nFactors)
		b := make([]float64, als.nFactors)
		for position, index := range postings[s] {
			y := fixed[index]
			r := float64(values[s][position])
			for i := 0; i < als.nFactors; i++ {
				b[i] += r * float64(y[i])
				for j := i; j < als.nFactors; j++ {
					a[i*als.nFactors+j] += float64(y[i]) * float64(y[j])
				}
			}
		}
		for i := 0; i < als.nFactors; i++ {
			a[i*als.nFactors+i] += float64(als.reg)
		}
		var chol mat.Cholesky
		if ok := chol.Factorize(mat.NewSymDense(als.nFactors, mirrorUpper(a, als.nFactors))); !ok {
			return errors.Errorf("als: normal equations are not positive definite")
		}
		x := mat.NewVecDense(als.nFactors, nil)
		if err := chol.SolveVecTo(x, mat.NewVecDense(als.nFactors, b)); err != nil {
			return errors.Trace(err)
		}
		for i := range dst[s] {
			dst[s][i] = float32(x.AtVec(i))
		}
		return nil
	})
}

// mirrorUpper copies the upper triangle of a row-major n×n matrix onto the
// lower triangle in place.
func mirrorUpper(a []float64, n int) []float64 {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a[j*n+i] = a[i*n+j]
		}
	}
	return a
}

// trainingError computes the reconstruction RMSE over the train set.
func (als *ALS) trainingError(trainSet *DataSet) float32 {
	sum := float32(0)
	for i := 0; i < trainSet.Count(); i++ {
		userIndex, itemIndex, rating := trainSet.Get(i)
		diff := als.InternalPredict(userIndex, itemIndex) - rating
		sum += diff * diff
	}
	return math32.Sqrt(sum / float32(trainSet.Count()))
}

var _ MatrixFactorization = &ALS{}
